package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/xdso/internal/app"
)

func (c *CLI) newRelinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relink",
		Short: "Plan and execute the relink of all packaged libraries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifest, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			outDir, _ := cmd.Flags().GetString("out")
			rewriteMap, _ := cmd.Flags().GetString("rewrite-map")
			parallelism, _ := cmd.Flags().GetInt("jobs")

			return c.app.Run(cmd.Context(), app.RunOptions{
				ManifestPath:   manifest,
				OutDir:         outDir,
				RewriteMapPath: rewriteMap,
				Parallelism:    parallelism,
			})
		},
	}
	cmd.Flags().StringP("out", "o", "xdso-out", "Output directory for relinked libraries")
	cmd.Flags().String("rewrite-map", "", "Rewrite map path (default <out>/rewrite_map.json)")
	cmd.Flags().IntP("jobs", "j", 0, "Maximum concurrent relink actions (0 = NumCPU)")
	return cmd
}
