package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linguoquest/linguoquest/internal/content"
)

var syllabusCmd = &cobra.Command{
	Use:   "syllabus",
	Short: "Show the topics questions are drawn from",
	RunE: func(cmd *cobra.Command, args []string) error {
		subjectVal, _ := cmd.Flags().GetString("subject")
		gradeVal, _ := cmd.Flags().GetString("grade")

		subjects := content.Subjects()
		if subjectVal != "" {
			s, err := content.ParseSubject(subjectVal)
			if err != nil {
				return err
			}
			subjects = []content.Subject{s}
		}
		grades := content.Grades()
		if gradeVal != "" {
			g, err := content.ParseGrade(gradeVal)
			if err != nil {
				return err
			}
			grades = []content.Grade{g}
		}

		for _, s := range subjects {
			for _, g := range grades {
				printSyllabus(s, g, content.SyllabusFor(s, g))
			}
		}
		return nil
	},
}

func printSyllabus(subject content.Subject, grade content.Grade, syl content.Syllabus) {
	fmt.Printf("%s, Grade %s\n", subject, grade)
	fmt.Println(strings.Repeat("─", 60))
	if syl.Empty() {
		fmt.Print("  (no syllabus; questions use general grade-level topics)\n\n")
		return
	}
	for _, sec := range []struct {
		name   string
		topics []string
	}{
		{"Literature", syl.Literature},
		{"Grammar", syl.Grammar},
		{"Lessons", syl.Lessons},
	} {
		if len(sec.topics) == 0 {
			continue
		}
		fmt.Printf("  %s\n", sec.name)
		for _, t := range sec.topics {
			fmt.Printf("    • %s\n", t)
		}
	}
	fmt.Println()
}

func init() {
	syllabusCmd.Flags().String("subject", "", "Only this subject: English, Hindi or French")
	syllabusCmd.Flags().String("grade", "", "Only this grade: 6, 7 or 8")
}
