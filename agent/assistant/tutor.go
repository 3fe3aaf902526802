package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	contractx "github.com/kritsw/attendant/agent/contract"
	referencex "github.com/kritsw/attendant/agent/reference"
	"github.com/kritsw/attendant/agent/scoring"
	statex "github.com/kritsw/attendant/agent/state"
	toolx "github.com/kritsw/attendant/agent/tool"
)

// Tutor teaches concepts from the reference store and scores the student's
// teach-back explanations, keeping the scoring history on the session.
type Tutor struct {
	session *statex.Session
	ref     *referencex.Store
	deps    Deps
}

func tutorSlots() []statex.SlotSpec {
	return []statex.SlotSpec{
		{Name: "student_name", Label: "student name", Required: true},
		{Name: "objectives", Label: "learning objectives", List: true},
	}
}

func NewTutor(sessionID string, deps Deps) *Tutor {
	return &Tutor{
		session: statex.NewSession(sessionID, tutorSlots(), deps.now()),
		ref:     deps.Ref,
		deps:    deps,
	}
}

func (t *Tutor) Name() string         { return "tutor" }
func (t *Tutor) Instructions() string { return prompt(tutorPromptRaw) }

// Session exposes the slot state and scoring history for tests.
func (t *Tutor) Session() *statex.Session { return t.session }

func (t *Tutor) Tools() []toolx.Spec {
	return []toolx.Spec{
		{
			Name: "update_student_name",
			Desc: "Set the student's name for this session.",
			Args: []toolx.Arg{
				{Name: "name", Desc: "The student's name", Type: toolx.TypeString, Required: true},
			},
			Handler: t.setName,
		},
		{
			Name: "add_learning_objective",
			Desc: "Record something the student wants to get out of the session.",
			Args: []toolx.Arg{
				{Name: "objective", Desc: "The objective in the student's words", Type: toolx.TypeString, Required: true},
			},
			Handler: t.addObjective,
		},
		{
			Name:    "list_concepts",
			Desc:    "List the concepts available to study.",
			Handler: t.listConcepts,
		},
		{
			Name: "explain_concept",
			Desc: "Explain a concept and pose its practice question.",
			Args: []toolx.Arg{
				{Name: "concept", Desc: "Concept name or id", Type: toolx.TypeString, Required: true},
			},
			Handler: t.explain,
		},
		{
			Name: "score_explanation",
			Desc: "Score the student's own explanation of a concept and give feedback.",
			Args: []toolx.Arg{
				{Name: "concept", Desc: "Concept name or id", Type: toolx.TypeString, Required: true},
				{Name: "explanation", Desc: "The student's explanation, verbatim", Type: toolx.TypeString, Required: true},
			},
			Handler: t.score,
		},
		{
			Name:    "get_progress",
			Desc:    "Recap the session: objectives and scored explanations so far.",
			Handler: t.progress,
		},
	}
}

func (t *Tutor) setName(_ context.Context, args toolx.Args) (string, error) {
	name := strings.TrimSpace(args.String("name"))
	if err := t.session.Set("student_name", name); err != nil {
		return "", err
	}
	return fmt.Sprintf("Nice to meet you, %s!", name), nil
}

func (t *Tutor) addObjective(_ context.Context, args toolx.Args) (string, error) {
	objective := strings.TrimSpace(args.String("objective"))
	added, err := t.session.AppendUnique("objectives", objective)
	if err != nil {
		return "", err
	}
	if !added {
		return fmt.Sprintf("We already have %s on the list.", objective), nil
	}
	return fmt.Sprintf("Noted, we'll work on %s.", objective), nil
}

func (t *Tutor) listConcepts(context.Context, toolx.Args) (string, error) {
	concepts := t.ref.Concepts()
	titles := make([]string, len(concepts))
	for i, c := range concepts {
		titles[i] = c.Title
	}
	return fmt.Sprintf("We can go through: %s.", strings.Join(titles, ", ")), nil
}

func (t *Tutor) explain(_ context.Context, args toolx.Args) (string, error) {
	query := args.String("concept")
	concept, err := t.ref.FindConcept(query)
	if err != nil {
		if errors.Is(err, contractx.ErrNotFound) {
			return fmt.Sprintf("I don't have %s in my material.", query), nil
		}
		return "", err
	}
	return fmt.Sprintf("%s. Here's a question to think about: %s", concept.Summary, concept.SampleQuestion), nil
}

func (t *Tutor) score(_ context.Context, args toolx.Args) (string, error) {
	query := args.String("concept")
	concept, err := t.ref.FindConcept(query)
	if err != nil {
		if errors.Is(err, contractx.ErrNotFound) {
			return fmt.Sprintf("I don't have %s in my material.", query), nil
		}
		return "", err
	}

	result := scoring.Score(concept.Summary, args.String("explanation"))
	t.session.RecordInteraction(statex.Interaction{
		Kind:      "teachback",
		ConceptID: concept.ID,
		Keywords:  result.Matched,
		Ratio:     result.Ratio,
		At:        t.deps.now().UTC(),
	})

	message, suggestion := result.Tier.Feedback()
	return message + " " + suggestion, nil
}

func (t *Tutor) progress(context.Context, toolx.Args) (string, error) {
	var parts []string
	if objectives := t.session.List("objectives"); len(objectives) > 0 {
		parts = append(parts, "Objectives: "+strings.Join(objectives, ", ")+".")
	}

	history := t.session.Interactions()
	if len(history) == 0 {
		parts = append(parts, "No explanations scored yet.")
	} else {
		strong := 0
		for _, rec := range history {
			if rec.Ratio > 0.6 {
				strong++
			}
		}
		parts = append(parts, fmt.Sprintf(
			"You've explained %d concepts back to me, %d of them really well.",
			len(history), strong,
		))
	}
	return strings.Join(parts, " "), nil
}
