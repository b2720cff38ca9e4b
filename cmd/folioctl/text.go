package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/philly/folio/internal/platform/markdown"
	"github.com/philly/folio/internal/platform/validator"
	"github.com/philly/folio/internal/posts/domain"
	"github.com/spf13/cobra"
)

func newSlugCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "slug <title...>",
		Short: "Print the URL slug of a title",
		Long: `Normalizes a title the way new posts get their slug. With --check the
argument is treated as a slug and only validated.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			if check {
				if err := validator.ValidateSlugFormat(input, domain.MaxSlugLength); err != nil {
					return fmt.Errorf("%q: %w", input, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), validator.NormalizeSlug(input))
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "validate the argument as a slug instead of normalizing it")
	return cmd
}

func newExcerptCmd() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "excerpt [file]",
		Short: "Print the plain-text excerpt of a markdown document",
		Long:  `Reads markdown from the file, or from stdin when no file or "-" is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				src = f
			}

			text, err := io.ReadAll(src)
			if err != nil {
				return fmt.Errorf("read markdown: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), markdown.ExtractExcerpt(string(text), length))
			return nil
		},
	}
	cmd.Flags().IntVar(&length, "length", markdown.DefaultExcerptLength, "maximum excerpt length in characters")
	return cmd
}
