package gateway

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	openaisdk "github.com/openai/openai-go/v2"
	"github.com/rs/zerolog/log"

	"github.com/kritsw/attendant/agent/assistant"
	toolx "github.com/kritsw/attendant/agent/tool"
)

// Runner drives the tool catalog from a chat model over a console: the local
// stand-in for the voice pipeline's reasoning component. It owns the
// conversation loop; the assistant only ever sees tool calls.
type Runner struct {
	client       *openaisdk.Client
	model        string
	reg          *toolx.Registry
	instructions string
}

func NewRunner(client *openaisdk.Client, model string, a assistant.Assistant, reg *toolx.Registry) *Runner {
	return &Runner{
		client:       client,
		model:        model,
		reg:          reg,
		instructions: a.Instructions(),
	}
}

// Run reads user turns line by line until EOF or an exit word. One tool call
// executes at a time; the model gets each result before deciding the next.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	messages := []openaisdk.ChatCompletionMessageParamUnion{
		openaisdk.SystemMessage(r.instructions),
	}
	tools := r.toolParams()

	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "you: ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(out, "you: ")
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		messages = append(messages, openaisdk.UserMessage(line))
		reply, updated, err := r.step(ctx, messages, tools)
		if err != nil {
			return err
		}
		messages = updated
		fmt.Fprintf(out, "assistant: %s\nyou: ", reply)
	}
	return scanner.Err()
}

// step runs model turns, resolving tool calls, until the model answers with
// plain text.
func (r *Runner) step(
	ctx context.Context,
	messages []openaisdk.ChatCompletionMessageParamUnion,
	tools []openaisdk.ChatCompletionToolUnionParam,
) (string, []openaisdk.ChatCompletionMessageParamUnion, error) {
	for {
		completion, err := r.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
			Model:    openaisdk.ChatModel(r.model),
			Messages: messages,
			Tools:    tools,
		})
		if err != nil {
			return "", messages, fmt.Errorf("chat completion: %w", err)
		}
		if len(completion.Choices) == 0 {
			return "", messages, fmt.Errorf("chat completion returned no choices")
		}

		msg := completion.Choices[0].Message
		messages = append(messages, msg.ToParam())

		if len(msg.ToolCalls) == 0 {
			return strings.TrimSpace(msg.Content), messages, nil
		}

		for _, call := range msg.ToolCalls {
			args := map[string]any{}
			if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
				if err := json.Unmarshal([]byte(raw), &args); err != nil {
					log.Warn().Err(err).Str("tool", call.Function.Name).Msg("bad tool arguments from model")
				}
			}
			text := r.reg.Dispatch(ctx, call.Function.Name, args)
			messages = append(messages, openaisdk.ToolMessage(text, call.ID))
		}
	}
}

func (r *Runner) toolParams() []openaisdk.ChatCompletionToolUnionParam {
	specs := r.reg.Specs()
	out := make([]openaisdk.ChatCompletionToolUnionParam, 0, len(specs))
	for _, spec := range specs {
		properties := make(map[string]any, len(spec.Args))
		required := []string{}
		for _, arg := range spec.Args {
			properties[arg.Name] = map[string]any{
				"type":        string(arg.Type),
				"description": arg.Desc,
			}
			if arg.Required {
				required = append(required, arg.Name)
			}
		}
		out = append(out, openaisdk.ChatCompletionFunctionTool(openaisdk.FunctionDefinitionParam{
			Name:        spec.Name,
			Description: openaisdk.String(spec.Desc),
			Parameters: openaisdk.FunctionParameters{
				"type":       "object",
				"properties": properties,
				"required":   required,
			},
		}))
	}
	return out
}
