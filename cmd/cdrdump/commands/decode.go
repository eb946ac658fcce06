package commands

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marmos91/gocdr/internal/logger"
	"github.com/marmos91/gocdr/pkg/cdr"
	"github.com/marmos91/gocdr/pkg/metrics"
	"github.com/marmos91/gocdr/pkg/telemetry"
	"github.com/spf13/cobra"
)

var decodeVersion string

var decodeCmd = &cobra.Command{
	Use:   "decode <hex-bytes>",
	Short: "Read an encapsulation header and print one row per member",
	Long: `decode reads the 4-byte encapsulation header off a hex-encoded frame,
then walks the member stream with a generic dispatcher, printing one row
per member found: its id, the header flavor that announced it, its
length, and its raw bytes.

Final and Appendable blocks carry no per-member framing, so decode prints
their entire payload as a single opaque row.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringVar(&decodeVersion, "version", "", "CDR version: corba, xcdr1, or xcdr2 (overrides the header's own version hint when set)")
}

func decodeFrames(hexBytes string) (*cdr.Codec, []cdr.MemberFrame, error) {
	data, err := hex.DecodeString(hexBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid hex input: %w", err)
	}

	version := cdr.XCDRv2
	if decodeVersion != "" {
		version, err = parseCdrVersion(decodeVersion)
		if err != nil {
			return nil, nil, err
		}
	} else {
		version = guessVersionFromEncapsulation(data)
	}

	buf := cdr.NewBuffer(data)
	codec := cdr.NewCodec(buf, cdr.HostEndianness(), version)

	flag, err := codec.DeserializeEncapsulation()
	if err != nil {
		return nil, nil, fmt.Errorf("bad encapsulation header: %w", err)
	}

	frames, err := codec.DeserializeFrames(kindForFlag(flag))
	if err != nil {
		return nil, nil, fmt.Errorf("walking member stream: %w", err)
	}
	return codec, frames, nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	sessionID := uuid.New().String()
	lc := logger.NewLogContext(sessionID).WithOperation("decode")
	ctx := logger.WithContext(cmd.Context(), lc)

	codecMetrics := metrics.NewCodecMetrics()
	start := time.Now()

	_, span := telemetry.StartCodecSpan(ctx, "decode")
	defer span.End()

	codec, frames, err := decodeFrames(args[0])
	if err != nil {
		metrics.RecordError(codecMetrics, "decode", "walk")
		return err
	}

	n := codec.GetSerializedDataLength()
	metrics.RecordDecode(codecMetrics, codec.Version(), codec.GetEncodingFlag(), n, time.Since(start))

	for _, f := range frames {
		fmt.Printf("id=%d\theader=%s\tlength=%d\traw=%s\n",
			f.ID, headerKindLabel(f.Header), len(f.Raw), hex.EncodeToString(f.Raw))
	}
	return nil
}
