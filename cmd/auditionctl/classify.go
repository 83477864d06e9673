package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/audition-directory-api/internal/audition"
	"github.com/noah-isme/audition-directory-api/internal/dto"
	"github.com/noah-isme/audition-directory-api/internal/service"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Print status and rank key for each audition",
	Long:  "Reads a JSON array of raw auditions and prints one line per audition: id, status category and rank key. A dash marks no status or no key.",
	RunE:  runClassify,
}

var (
	classifyInput  string
	classifyToday  string
	classifyStrict bool
)

func init() {
	classifyCmd.Flags().StringVarP(&classifyInput, "in", "i", "", "Path to auditions JSON file (required)")
	classifyCmd.Flags().StringVar(&classifyToday, "today", "", "Reference date YYYY-MM-DD (defaults to today)")
	classifyCmd.Flags().BoolVar(&classifyStrict, "strict", false, "Reject unknown modes and malformed dates instead of treating them as absent")

	if err := classifyCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, _ []string) error {
	today, err := resolveToday(classifyToday, time.Now())
	if err != nil {
		return err
	}

	var inputs []dto.AuditionInput
	if err := readJSON(classifyInput, &inputs); err != nil {
		return err
	}
	if classifyStrict {
		if err := validateAll(inputs); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, in := range inputs {
		a := service.AuditionFromInput(in)
		category := "-"
		if status, ok := audition.Classify(a, today); ok {
			category = string(status.Category)
		}
		key, ok := audition.RankKey(a, today)
		fmt.Fprintf(w, "%s\t%s\t%s\n", in.ID, category, formatKey(key, ok))
	}
	return w.Flush()
}
