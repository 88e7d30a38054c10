// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/gemini"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/validation"
)

// finalResultTool is the function the model calls with its structured answer.
const finalResultTool = "final_result"

// extraTurns leaves room for invalid answers beyond the tool budget.
const extraTurns = 3

// ErrNoResult is returned when the model never produced a valid answer
// within the turn budget.
var ErrNoResult = errors.New("recommend: model did not return a valid result")

// Model generates content. *gemini.Client implements it.
type Model interface {
	GenerateContent(ctx context.Context, req *gemini.GenerateRequest) (*gemini.GenerateResponse, error)
}

// ToolFunc executes a tool call. The result must encode as a JSON object.
type ToolFunc func(ctx context.Context, args json.RawMessage) (map[string]any, error)

// Tool is a function the model may call.
type Tool struct {
	Declaration gemini.FunctionDeclaration
	Run         ToolFunc
}

// agent is one configured LLM run: prompt, output schema and tools.
type agent struct {
	name         string
	model        Model
	system       string
	output       *gemini.Schema
	tools        []Tool
	maxToolCalls int
}

func (a *agent) request(contents []gemini.Content, offerTools bool) *gemini.GenerateRequest {
	decls := []gemini.FunctionDeclaration{{
		Name:        finalResultTool,
		Description: "The final response which ends this conversation.",
		Parameters:  a.output,
	}}
	if offerTools {
		for _, t := range a.tools {
			decls = append(decls, t.Declaration)
		}
	}

	return &gemini.GenerateRequest{
		SystemInstruction: gemini.SystemText(a.system),
		Contents:          contents,
		Tools:             []gemini.Tool{{FunctionDeclarations: decls}},
		ToolConfig: &gemini.ToolConfig{
			FunctionCallingConfig: &gemini.FunctionCallingConfig{Mode: gemini.ModeAny},
		},
	}
}

func (a *agent) lookup(name string) (Tool, bool) {
	for _, t := range a.tools {
		if t.Declaration.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

// runAgent drives a until it calls final_result with arguments that decode
// into a valid T.
func runAgent[T any](ctx context.Context, a *agent, prompt string) (T, error) {
	var zero T
	logger := logging.Ctx(ctx).With().Str("agent", a.name).Logger()

	contents := []gemini.Content{gemini.UserText(prompt)}
	toolCalls := 0
	maxTurns := a.maxToolCalls + extraTurns

	for turn := 0; turn < maxTurns; turn++ {
		offerTools := len(a.tools) > 0 && toolCalls < a.maxToolCalls
		resp, err := a.model.GenerateContent(ctx, a.request(contents, offerTools))
		if err != nil {
			return zero, err
		}

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			// Text answers are accepted when they hold the JSON result.
			if out, err := decodeOutput[T](stripFences(resp.Text())); err == nil {
				return out, nil
			}
			contents = append(contents, modelTurn(resp),
				gemini.UserText(fmt.Sprintf("Respond by calling the %s function.", finalResultTool)))
			continue
		}

		contents = append(contents, modelTurn(resp))
		parts := make([]gemini.Part, 0, len(calls))
		for _, call := range calls {
			if call.Name == finalResultTool {
				out, err := decodeOutput[T](call.Args)
				if err == nil {
					logger.Debug().Int("turns", turn+1).Int("tool_calls", toolCalls).Msg("Agent run complete")
					return out, nil
				}
				logger.Warn().Err(err).Msg("Model returned an invalid result")
				parts = append(parts, errorPart(call.Name, "invalid result: "+err.Error()))
				continue
			}

			parts = append(parts, a.callTool(ctx, call, &toolCalls))
			if ctx.Err() != nil {
				return zero, ctx.Err()
			}
		}
		contents = append(contents, gemini.Content{Role: gemini.RoleUser, Parts: parts})
	}

	logger.Warn().Int("turns", maxTurns).Msg("Agent run exhausted its turns")
	return zero, ErrNoResult
}

// callTool runs one tool call and returns the part reporting its result.
// Tool failures are reported to the model rather than aborting the run.
func (a *agent) callTool(ctx context.Context, call gemini.FunctionCall, used *int) gemini.Part {
	tool, ok := a.lookup(call.Name)
	if !ok || *used >= a.maxToolCalls {
		return errorPart(call.Name, fmt.Sprintf("tool %s is not available, call %s", call.Name, finalResultTool))
	}

	*used++
	metrics.LLMToolCalls.WithLabelValues(call.Name).Inc()

	args := call.Args
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	result, err := tool.Run(ctx, args)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("tool", call.Name).Msg("Tool call failed")
		return errorPart(call.Name, err.Error())
	}
	return gemini.Part{FunctionResponse: &gemini.FunctionResponse{Name: call.Name, Response: result}}
}

func decodeOutput[T any](raw []byte) (T, error) {
	var out T
	if len(raw) == 0 {
		return out, errors.New("empty result")
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	if verr := validation.ValidateStruct(&out); verr != nil {
		return out, verr
	}
	return out, nil
}

func modelTurn(resp *gemini.GenerateResponse) gemini.Content {
	content := resp.Candidates[0].Content
	if content.Role == "" {
		content.Role = gemini.RoleModel
	}
	return content
}

func errorPart(name, msg string) gemini.Part {
	return gemini.Part{FunctionResponse: &gemini.FunctionResponse{
		Name:     name,
		Response: map[string]any{"error": msg},
	}}
}

// stripFences removes a markdown code fence around a JSON answer.
func stripFences(text string) []byte {
	text = strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(text, "```"); ok {
		rest = strings.TrimPrefix(rest, "json")
		rest = strings.TrimSuffix(strings.TrimSpace(rest), "```")
		text = strings.TrimSpace(rest)
	}
	return []byte(text)
}
