package commands

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/marmos91/gocdr/internal/cli/prompt"
	"github.com/marmos91/gocdr/internal/logger"
	"github.com/marmos91/gocdr/pkg/cdr"
	"github.com/marmos91/gocdr/pkg/metrics"
	"github.com/marmos91/gocdr/pkg/telemetry"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	encodeVersion string
	encodeKind    string
	encodeEndian  string
	encodeFastCDR bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode <members-json>",
	Short: "Serialize a JSON array of members into a CDR frame",
	Long: `encode drives the scoped-block serializer over a JSON array of
members and prints the resulting frame as hex.

Each array entry is an object with "id", an optional "must_understand",
a "type" (bool, int8, uint8, int16, uint16, int32, uint32, int64, uint64,
float32, float64, string, wstring, or bytes), and a "value". "bytes"
values are hex strings.

Example:
  cdrdump encode --version xcdr2 --kind mutable --endian le \
    '[{"id":1,"type":"uint32","value":42},{"id":2,"type":"string","value":"hi"}]'`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().StringVar(&encodeVersion, "version", "", "CDR version: corba, xcdr1, or xcdr2")
	encodeCmd.Flags().StringVar(&encodeKind, "kind", "final", "Extensibility kind: final, appendable, or mutable")
	encodeCmd.Flags().StringVar(&encodeEndian, "endian", "", "Endianness: be, le, or default-host")
	encodeCmd.Flags().BoolVar(&encodeFastCDR, "fastcdr", false, "Disable alignment padding (DDS FastCDR)")
}

func runEncode(cmd *cobra.Command, args []string) error {
	sessionID := uuid.New().String()
	lc := logger.NewLogContext(sessionID)
	ctx := logger.WithContext(cmd.Context(), lc)

	if encodeVersion == "" || encodeEndian == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("--version and --endian are required when stdin is not a terminal")
		}
		if err := promptEncodeFlags(); err != nil {
			if err == prompt.ErrAborted {
				fmt.Fprintln(os.Stderr, "aborted")
				return nil
			}
			return err
		}
	}

	version, err := parseCdrVersion(encodeVersion)
	if err != nil {
		return err
	}
	endianness, err := parseEndianness(encodeEndian)
	if err != nil {
		return err
	}
	kind, err := parseExtensibilityKind(encodeKind)
	if err != nil {
		return err
	}

	specs, err := parseMemberSpecs(args[0])
	if err != nil {
		return err
	}

	bufCfg := currentConfig().Buffer
	buf := cdr.NewGrowableBuffer(bufCfg.InitialSize, bufCfg.HardCap)
	defer buf.Release()

	var opts []cdr.Option
	if encodeFastCDR {
		opts = append(opts, cdr.WithFastCDR())
	}
	codec := cdr.NewCodec(buf, endianness, version, opts...)

	codecMetrics := metrics.NewCodecMetrics()
	start := time.Now()

	lc = lc.WithOperation("encode").WithCodec(version.String(), endianness.String())
	ctx = logger.WithContext(ctx, lc)
	_, span := telemetry.StartCodecSpan(ctx, "encode",
		telemetry.Version(version.String()),
		telemetry.Endianness(endianness.String()),
		telemetry.Kind(codec.EncodingFlagFor(kind).String()),
	)
	defer span.End()

	if err := codec.SerializeEncapsulation(codec.EncodingFlagFor(kind)); err != nil {
		metrics.RecordError(codecMetrics, "encode", "encapsulation")
		return err
	}

	outer, err := codec.BeginSerializeType(kind)
	if err != nil {
		metrics.RecordError(codecMetrics, "encode", "begin_serialize_type")
		return err
	}

	for _, spec := range specs {
		if err := codec.SerializeMember(spec.ID, spec.MustUnderstand, func(c *cdr.Codec) error {
			return writeMember(c, spec)
		}); err != nil {
			metrics.RecordError(codecMetrics, "encode", "serialize_member")
			return fmt.Errorf("member %d: %w", spec.ID, err)
		}
	}

	if err := codec.EndSerializeType(outer); err != nil {
		metrics.RecordError(codecMetrics, "encode", "end_serialize_type")
		return err
	}

	n := codec.GetSerializedDataLength()
	metrics.RecordEncode(codecMetrics, version, codec.GetEncodingFlag(), n, time.Since(start))

	fmt.Println(hex.EncodeToString(buf.Bytes()))
	return nil
}

func promptEncodeFlags() error {
	if encodeVersion == "" {
		v, err := prompt.Select("CDR version", []prompt.SelectOption{
			{Label: "Classic CORBA CDR", Value: "corba"},
			{Label: "XCDR version 1", Value: "xcdr1"},
			{Label: "XCDR version 2", Value: "xcdr2"},
		})
		if err != nil {
			return err
		}
		encodeVersion = v
	}
	if encodeEndian == "" {
		e, err := prompt.Select("Endianness", []prompt.SelectOption{
			{Label: "Big endian", Value: "be"},
			{Label: "Little endian", Value: "le"},
			{Label: "Default host endianness", Value: "default-host"},
		})
		if err != nil {
			return err
		}
		encodeEndian = e
	}
	return nil
}
