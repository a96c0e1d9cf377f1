package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	generateOut   string
	generateCount int
)

type seedEntry struct {
	keyword      string
	question     string
	answer       string
	lawReference string
}

var baseEntries = []seedEntry{
	{"dowry", "What is dowry law?", "Dowry is illegal in many countries; if demanded, report to police and seek legal support or women's help centers.", "Dowry Prohibition Act, 1961"},
	{"domestic_violence", "What protections exist against domestic violence?", "Most places provide protection orders and shelters. Seek police help, medical care, and legal aid or shelters for safety.", "Protection of Women from Domestic Violence Act, 2005"},
	{"harassment", "How do I report workplace harassment?", "Document incidents, report to HR or the employer's complaint mechanism, and contact labour authorities or helplines if needed.", "Sexual Harassment of Women at Workplace Act, 2013"},
	{"fir", "How to file a police complaint (FIR)?", "Go to the police station or use online portals if available; give clear details and seek legal aid if refused.", "Code of Criminal Procedure, Section 154"},
	{"custody", "What are child custody rights after separation?", "Courts decide based on the child's best interest; mothers can seek custody or shared custody. Consult a family lawyer.", "Guardians and Wards Act, 1890"},
	{"marriage", "Can forced marriage be challenged?", "Yes. Forced marriage is illegal in many places. Contact police, courts or human rights groups for annulment and protection.", "Prohibition of Child Marriage Act, 2006"},
	{"divorce", "What grounds exist for divorce?", "Common grounds include cruelty, adultery, abandonment, and mutual consent. Laws vary by country and community.", "Hindu Marriage Act, 1955, Section 13"},
	{"maternity", "What maternity protections exist at work?", "Maternity leave, job protection during pregnancy and breastfeeding breaks are common; check local labour law.", "Maternity Benefit Act, 1961"},
	{"legal_aid", "How to get free legal aid?", "Contact national legal aid services, NGOs, or university legal clinics for free or low-cost help.", "Legal Services Authorities Act, 1987"},
	{"cyber_harassment", "How to report online harassment?", "Save messages/screenshots, report on platform, and inform police or cyber cell; many countries have cybercrime laws.", "Information Technology Act, 2000, Section 67"},
}

var seedQuestions = []string{
	"How to get a protection order in an emergency?",
	"What steps after sexual assault?",
	"How to report trafficking?",
	"Can a woman refuse domestic relocation by spouse?",
	"What are laws about marital rape?",
	"How to change name legally after marriage?",
	"How to get custody while staying safe?",
	"Where to find women's shelters near me?",
	"How to report workplace discrimination?",
	"What to do if police refuse to file FIR?",
}

var seedAnswers = []string{
	"Apply to family courts or local magistrate for a protection order; NGOs can help prepare documents.",
	"Seek immediate medical care, preserve evidence, report to police, and contact support services and legal aid.",
	"Contact police, anti-trafficking hotlines, NGOs and shelters; governments offer rescue and rehabilitation.",
	"Laws vary; seek legal advice and court protection if forced to relocate against your will.",
	"Marital rape laws differ across countries; check local criminal laws and consult a lawyer.",
	"Name-change process requires affidavit and ID updates; follow your country-specific procedure and update documents.",
	"Talk to a family lawyer, document violence, and ask the court for temporary custody and protection orders.",
	"Search government helplines, local NGO directories or contact police for immediate shelter referrals.",
	"Collect proof, complain to HR, use internal complaints committee (if any) and contact labour authorities.",
	"Ask for written refusal, escalate to senior police officers, or reach out to legal aid organisations.",
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Seed a fresh FAQ CSV",
	Long:  "Write a knowledge base CSV with curated entries, padded with seed variations up to the requested row count.",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "legal_faq.csv", "output CSV path")
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 220, "total number of rows to write")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	f, err := os.Create(generateOut)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"keyword", "question", "answer", "law_reference"}); err != nil {
		return err
	}

	written := 0
	for _, e := range baseEntries {
		if written >= generateCount {
			break
		}
		if err := w.Write([]string{e.keyword, e.question, e.answer, e.lawReference}); err != nil {
			return err
		}
		written++
	}
	for i := 0; written < generateCount; i++ {
		q := seedQuestions[i%len(seedQuestions)]
		a := seedAnswers[i%len(seedAnswers)] + " If unsure, seek local legal advice."
		row := []string{fmt.Sprintf("mix_%d", written+1), q, a, ""}
		if err := w.Write(row); err != nil {
			return err
		}
		written++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	cmd.Printf("CSV created at %s, rows: %d\n", generateOut, written)
	return nil
}
