package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"linkedin-reviewer/internal/config"
	"linkedin-reviewer/internal/models"
	"linkedin-reviewer/internal/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "reviewctl",
		Short:        "Review LinkedIn profile PDFs and issue score certificates",
		SilenceUsage: true,
	}

	root.AddCommand(newReviewCmd(), newExtractCmd(), newCertificateCmd())
	return root
}

func newLogger(cfg *config.Config) *zap.Logger {
	logger, err := config.NewLogger(cfg)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newReviewCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "review <profile.pdf>",
		Short: "Review a LinkedIn profile PDF and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := newLogger(cfg)
			defer logger.Sync()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			completion, err := services.NewCompletionService(cfg.LLM, logger)
			if err != nil {
				return err
			}
			reviewer := services.NewReviewerService(
				completion,
				services.NewPDFParserService(),
				logger,
				services.ReviewerOptions{
					CredentialEnv: cfg.LLM.CredentialEnv(),
					StrictSchema:  cfg.Review.StrictSchema,
				},
			)

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LLM.Timeout)
			defer cancel()

			review, err := reviewer.Review(ctx, &models.Upload{
				Filename: filepath.Base(args[0]),
				Data:     data,
			}, role)
			if err != nil {
				if re, ok := services.AsReviewError(err); ok && re.Details != "" {
					return fmt.Errorf("%s %s", re.Message, re.Details)
				}
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(models.ReviewResponse{Review: review})
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "target job role or title")
	return cmd
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <profile.pdf>",
		Short: "Print the extracted text and parsed network stats of a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := services.NewPDFParserService().ExtractFile(args[0])
			if err != nil {
				return err
			}

			stats := services.ParseStats(text)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, text)
			fmt.Fprintln(out, "---")
			fmt.Fprintf(out, "likely profile: %t\n", services.IsLikelyProfile(text))
			fmt.Fprintf(out, "connections: %s\n", formatCount(stats.Connections))
			fmt.Fprintf(out, "followers: %s\n", formatCount(stats.Followers))
			return nil
		},
	}
}

func newCertificateCmd() *cobra.Command {
	var (
		name      string
		score     int
		out       string
		date      string
		verifyURL string
	)

	cmd := &cobra.Command{
		Use:   "certificate",
		Short: "Render a score certificate PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if score < 0 || score > 100 {
				return errors.New("--score must be between 0 and 100")
			}

			cfg := config.Load()
			logger := newLogger(cfg)
			defer logger.Sync()

			if verifyURL == "" {
				verifyURL = cfg.Certificate.VerificationURL
			}

			certificates := services.NewCertificateService(logger)
			err := certificates.RenderToFile(out, models.CertificateRequest{
				Name:            name,
				Score:           score,
				Issuer:          cfg.Certificate.Issuer,
				CreditsText:     cfg.Certificate.CreditsText,
				Date:            date,
				VerificationURL: verifyURL,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "certificate written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name printed on the certificate")
	cmd.Flags().IntVar(&score, "score", 0, "profile score between 0 and 100")
	cmd.Flags().StringVar(&out, "out", services.CertificateFilename, "output file path")
	cmd.Flags().StringVar(&date, "date", "", `issue date, e.g. "07 March 2026" (defaults to today)`)
	cmd.Flags().StringVar(&verifyURL, "verify-url", "", "URL encoded in the QR code")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}

func formatCount(n *int) string {
	if n == nil {
		return "unknown"
	}
	return fmt.Sprint(*n)
}
