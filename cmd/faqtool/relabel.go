package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/legalmitra/legalmitra/internal/knowledge"
)

var (
	relabelIn  string
	relabelOut string
)

// Keyword groups cycled across the data rows.
var relabelKeywords = []string{
	"protection_order_emergency",
	"steps_after_sexual_assault",
	"report_trafficking",
	"refuse_domestic_relocation",
	"marital_rape_laws",
	"name_change_after_marriage",
	"custody_safety",
	"womens_shelters",
	"workplace_discrimination",
	"police_refuse_FIR",
}

var relabelCmd = &cobra.Command{
	Use:   "relabel",
	Short: "Rewrite the keyword column of a FAQ CSV",
	Long:  "Replace the first column of every data row with a repeating cycle of keyword labels, keeping the header intact.",
	RunE:  runRelabel,
}

func init() {
	relabelCmd.Flags().StringVarP(&relabelIn, "in", "i", "legal_faq.csv", "input CSV path")
	relabelCmd.Flags().StringVarP(&relabelOut, "out", "o", "legal_faq_updated.csv", "output CSV path")
	rootCmd.AddCommand(relabelCmd)
}

func runRelabel(cmd *cobra.Command, args []string) error {
	in, err := os.Open(relabelIn)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("input file %s is empty", relabelIn)
	}

	out, err := os.Create(relabelOut)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	relabeled := 0
	for i, row := range rows {
		if i == 0 {
			if err := writer.Write(row); err != nil {
				return err
			}
			continue
		}
		if len(row) > 0 {
			row[0] = relabelKeywords[(i-1)%len(relabelKeywords)]
			relabeled++
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	// Sanity check: the result must still load as a knowledge table.
	if _, err := knowledge.LoadFile(relabelOut); err != nil {
		return fmt.Errorf("relabeled file failed to load: %w", err)
	}

	cmd.Printf("Updated CSV saved as %s, %d rows relabeled\n", relabelOut, relabeled)
	return nil
}
