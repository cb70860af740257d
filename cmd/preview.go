package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/linguoquest/linguoquest/internal/content"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview LLM-generated content for a subject and grade (no database)",
	Long: `Generate and interactively answer questions for a subject and grade.

Nothing is recorded: no scores and no LLM ledger entries. Useful for
checking prompt quality before playing.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("subject", "English", "Subject: English, Hindi or French")
	previewCmd.Flags().String("grade", "6", "Grade: 6, 7 or 8")
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
	previewCmd.Flags().Bool("story", false, "Generate a story graph instead of a question set")
}

func runPreview(cmd *cobra.Command, args []string) error {
	subjectVal, _ := cmd.Flags().GetString("subject")
	gradeVal, _ := cmd.Flags().GetString("grade")
	count, _ := cmd.Flags().GetInt("count")
	story, _ := cmd.Flags().GetBool("story")

	subject, err := content.ParseSubject(subjectVal)
	if err != nil {
		return err
	}
	grade, err := content.ParseGrade(gradeVal)
	if err != nil {
		return err
	}
	if count < 1 {
		return fmt.Errorf("invalid count %d: must be at least 1", count)
	}

	ctx := cmd.Context()
	provider, err := newProvider(ctx, nil, zap.NewNop())
	if err != nil {
		if errors.Is(err, errNoProvider) {
			return fmt.Errorf("%w: set LINGUOQUEST_LLM_PROVIDER or an API key", err)
		}
		return fmt.Errorf("LLM provider: %w", err)
	}
	supplier := content.NewLLMSupplier(provider, content.DefaultLLMConfig(), zap.NewNop())
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Printf("%s, Grade %s (%s)\n", subject, grade, provider.ModelID())

	if story {
		fmt.Print("Generating story...\n\n")
		g, err := supplier.FetchStoryGraph(ctx, subject, grade)
		if err != nil {
			return fmt.Errorf("generate story: %w", err)
		}
		walkStory(g, scanner)
		return nil
	}

	fmt.Printf("Generating %d questions...\n\n", count)
	items, err := supplier.FetchQuestions(ctx, subject, grade, count)
	if err != nil {
		return fmt.Errorf("generate questions: %w", err)
	}

	var correct int
	for i, q := range items {
		fmt.Printf("── Question %d/%d ──\n", i+1, len(items))
		fmt.Println(q.Prompt)
		for j, opt := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, opt)
		}

		choice, ok := readChoice(scanner, len(q.Options))
		if !ok {
			fmt.Println("\n(input closed)")
			break
		}
		if choice < 0 {
			fmt.Print("(skipped)\n\n")
			continue
		}

		if choice == q.CorrectIndex() {
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", q.CorrectOption)
		}
		if q.Explanation != "" {
			fmt.Printf("Explanation: %s\n", q.Explanation)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, len(items))
	return nil
}

// walkStory plays a story graph from its start node until a choice leads
// nowhere or input closes.
func walkStory(g *content.StoryGraph, scanner *bufio.Scanner) {
	node, ok := g.Start()
	for step := 1; ok; step++ {
		fmt.Printf("── Chapter %d ──\n", step)
		fmt.Println(node.Text)
		if len(node.Choices) == 0 {
			break
		}
		for j, c := range node.Choices {
			fmt.Printf("  %d) %s\n", j+1, c.Text)
		}

		choice, more := readChoice(scanner, len(node.Choices))
		if !more {
			fmt.Println("\n(input closed)")
			return
		}
		if choice < 0 {
			fmt.Print("(pick one of the choices)\n\n")
			step--
			continue
		}

		c := node.Choices[choice]
		if c.IsCorrect {
			fmt.Println("\033[32m✓ Good choice.\033[0m")
		} else {
			fmt.Println("\033[31m✗ Not the best choice.\033[0m")
		}
		fmt.Println()
		node, ok = g.Node(c.NextNodeID)
	}
	fmt.Println("── The End ──")
}

// readChoice reads a 1-based option number. It returns -1 for blank or
// out-of-range input and false once stdin closes.
func readChoice(scanner *bufio.Scanner, n int) (int, bool) {
	fmt.Print("\nYour answer: ")
	if !scanner.Scan() {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || v < 1 || v > n {
		return -1, true
	}
	return v - 1, true
}
