package convert

import (
	"errors"
	"io"
	"os"

	"github.com/seisio/gsewave/gse"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var convertflags = struct {
	input           string
	output          string
	format          string
	inplace         bool
	ignoreChecksums bool
}{}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert between the GSE format variants",
		Long: `
This command reads every block of the input file and writes it back in
the selected output format (GSE2 by default).`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&convertflags.input, "input", "i", "", "path to input file")
	cmd.Flags().StringVarP(&convertflags.output, "output", "o", "", "path to output file")
	cmd.Flags().StringVarP(&convertflags.format, "format", "f", "GSE2", "output format (GSE1, GSE2)")
	cmd.Flags().BoolVar(&convertflags.inplace, "inplace", false, "compress sample buffers in place")
	cmd.Flags().BoolVar(&convertflags.ignoreChecksums, "ignore-checksums", false, "do not verify checksums while reading")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	var format gse.Format
	switch convertflags.format {
	case "GSE1":
		format = gse.GSE1()
	case "GSE2":
		format = gse.GSE2()
	default:
		return errors.New("unknown output format " + convertflags.format)
	}

	in, err := os.Open(convertflags.input)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(convertflags.output)
	if err != nil {
		return err
	}
	defer out.Close()

	r := gse.NewReader(in)
	r.Verify = !convertflags.ignoreChecksums

	w := gse.NewWriter(out)
	w.Format = format
	w.Inplace = convertflags.inplace

	n := 0
	for {
		blk, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if err := w.WriteBlock(blk); err != nil {
			return err
		}
		n++
	}

	logrus.WithFields(logrus.Fields{
		"blocks": n,
		"output": convertflags.output,
	}).Info("conversion complete")

	return out.Close()
}
