package inspect

import (
	"fmt"
	"io"
	"os"

	"github.com/seisio/gsewave/gse"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>...",
		Short: "List the waveform blocks of GSE files",
		Long: `
This command reads the block headers of one or more GSE1/GSE2 files
without decoding checksums and prints one summary line per block.`,
		Args: cobra.MinimumNArgs(1),
		RunE: run,
	}

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		if err := inspectFile(path); err != nil {
			return err
		}
	}
	return nil
}

func inspectFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	logrus.WithField("file", path).Info("inspecting file")

	r := gse.NewReader(f)
	r.HeadOnly = true

	for i := 0; ; i++ {
		blk, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		h := blk.Header
		fmt.Printf("%s #%d  %-4s %-5s %-3s  %s  %g Hz  %d samples  %s\n",
			path, i, h.Tag, h.Station, h.Channel,
			h.StartTime.UTC().Format("2006-01-02 15:04:05.000"),
			h.SampleRate, h.NumSamples, h.DataFormat)
	}

	return nil
}
