package verify

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
		Use:   "verify <file>...",
		Short: "Verify the sample checksums of GSE files",
		Long: `
This command fully decodes every block of the given files and checks the
recorded checksums against the decoded samples.`,
		Args: cobra.MinimumNArgs(1),
		RunE: run,
	}

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	failed := false

	for _, path := range args {
		if err := verifyFile(path); err != nil {
			logrus.WithError(err).WithField("file", path).Error("verification failed")
			failed = true
		}
	}

	if failed {
		return fmt.Errorf("one or more files failed verification")
	}
	return nil
}

func verifyFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := gse.NewReader(f)

	for i := 0; ; i++ {
		blk, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		fmt.Printf("%s #%d  %s/%s  checksum %d ok\n",
			path, i, blk.Header.Station, blk.Header.Channel, blk.Checksum)
	}

	return nil
}
