package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/repository"
	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/resume"
	service "github.com/aakritiieee7/hrmanagementsystem/internal/app"
)

func newExtractCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>",
		Short: "Print the taxonomy skills found in a résumé (PDF, DOCX or text)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			tax, err := loadTaxonomy(c.cfg)
			if err != nil {
				return err
			}
			// Extraction never touches the configured store.
			svc := service.New(
				service.WithLogger(c.log.Named("service")),
				service.WithStore(repository.NewMemoryStore()),
				service.WithTaxonomy(tax),
				service.WithResumeExtractor(resume.New(
					resume.WithMaxBytes(c.cfg.MaxResumeBytes),
					resume.WithLogger(c.log.Named("resume")),
				)),
			)

			res, err := svc.ExtractResume(cmd.Context(), resume.Upload{
				Filename:    filepath.Base(path),
				ContentType: mime.TypeByExtension(filepath.Ext(path)),
				Data:        data,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d skills found\n", res.Count)
			for _, s := range res.Skills {
				fmt.Fprintln(out, s)
			}
			return nil
		},
	}
}
