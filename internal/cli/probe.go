package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nifstream/pkg/errors"
	"github.com/matzehuels/nifstream/pkg/nif"
)

// probeCommand creates the probe command.
func (c *CLI) probeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>",
		Short: "Identify a file's format version without decoding it",
		Long: `Probe reads only the file header and reports the format version.

The file is never decoded, so probing is cheap even for large assets.
Probe distinguishes files that are not scene-graph streams at all from
streams whose version this build does not support.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			v, userVersion, err := nif.Probe(f)
			switch {
			case errors.Is(err, errors.ErrCodeNotThisFormat):
				printError("%s is not a scene-graph file", filepath.Base(args[0]))
				return err
			case errors.Is(err, errors.ErrCodeUnsupportedVersion):
				printWarning("%s uses an unsupported format version", filepath.Base(args[0]))
				return err
			case err != nil:
				return err
			}
			logger.Debug("probed file", "path", args[0], "version", v.String())

			printSuccess("%s", filepath.Base(args[0]))
			printKeyValue("version", v.String())
			printKeyValue("ordinal", fmt.Sprintf("0x%08X", uint32(v)))
			printKeyValue("header", v.HeaderLine())
			if v.HasUserVersion() {
				printKeyValue("user version", fmt.Sprintf("%d", userVersion))
			}
			printNextStep("Inspect the block graph", fmt.Sprintf("%s dump %s", appName, args[0]))
			return nil
		},
	}
}
