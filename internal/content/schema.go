package content

import "github.com/linguoquest/linguoquest/internal/llm"

var questionItemDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id": map[string]any{
			"type": "string",
		},
		"question": map[string]any{
			"type":        "string",
			"description": "The question shown to the student",
		},
		"options": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Exactly 4 answer options",
		},
		"correctAnswer": map[string]any{
			"type":        "string",
			"description": "The correct option, copied verbatim from options",
		},
		"explanation": map[string]any{
			"type":        "string",
			"description": "Why the correct answer is right",
		},
	},
	"required":             []any{"id", "question", "options", "correctAnswer", "explanation"},
	"additionalProperties": false,
}

// QuestionSetSchema describes a generated question set.
var QuestionSetSchema = &llm.Schema{
	Name:        "question-set",
	Description: "A set of multiple choice language revision questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":  "array",
				"items": questionItemDefinition,
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// StoryGraphSchema describes a generated branching story.
var StoryGraphSchema = &llm.Schema{
	Name:        "story-graph",
	Description: "A branching revision story made of nodes and choices",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"startNodeId": map[string]any{
				"type": "string",
			},
			"nodes": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":   map[string]any{"type": "string"},
						"text": map[string]any{"type": "string"},
						"choices": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"text":       map[string]any{"type": "string"},
									"isCorrect":  map[string]any{"type": "boolean"},
									"nextNodeId": map[string]any{"type": "string"},
								},
								"required":             []any{"text", "isCorrect", "nextNodeId"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"id", "text", "choices"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"startNodeId", "nodes"},
		"additionalProperties": false,
	},
}
