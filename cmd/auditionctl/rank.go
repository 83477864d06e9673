package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/audition-directory-api/internal/audition"
	"github.com/noah-isme/audition-directory-api/internal/dto"
	"github.com/noah-isme/audition-directory-api/internal/models"
	"github.com/noah-isme/audition-directory-api/internal/service"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Print companies in upcoming order",
	Long:  "Reads a JSON array of companies with raw auditions and prints them stable-sorted by company rank key. Companies without a key keep their input order at the end.",
	RunE:  runRank,
}

var (
	rankInput    string
	rankToday    string
	rankUpcoming bool
	rankStrict   bool
)

func init() {
	rankCmd.Flags().StringVarP(&rankInput, "in", "i", "", "Path to companies JSON file (required)")
	rankCmd.Flags().StringVar(&rankToday, "today", "", "Reference date YYYY-MM-DD (defaults to today)")
	rankCmd.Flags().BoolVar(&rankUpcoming, "upcoming", false, "Only print companies with an upcoming audition")
	rankCmd.Flags().BoolVar(&rankStrict, "strict", false, "Reject unknown modes and malformed dates instead of treating them as absent")

	if err := rankCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	today, err := resolveToday(rankToday, time.Now())
	if err != nil {
		return err
	}

	var inputs []dto.CompanyInput
	if err := readJSON(rankInput, &inputs); err != nil {
		return err
	}
	if rankStrict {
		if err := validateAll(inputs); err != nil {
			return err
		}
	}

	companies := make([]models.Company, len(inputs))
	for i, in := range inputs {
		companies[i] = service.CompanyFromInput(in)
	}
	if rankUpcoming {
		companies = audition.FilterUpcoming(companies, today)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for i, c := range audition.SortCompanies(companies, today) {
		key, ok := audition.RankKeyForCompany(c, today)
		tier, date := "-", "-"
		if ok {
			tier = fmt.Sprintf("%d", key.Tier)
			date = key.At.Format(dateLayout)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, c.Name, tier, date, formatKey(key, ok))
	}
	return w.Flush()
}
