package tools

import "hnet-mcp/internal/envelope"

// AssessorTool grades agent answers with an LLM judge via benchmark_assessor.py.
type AssessorTool struct{}

// NewAssessorTool constructs the LLM-judge assessment tool.
func NewAssessorTool() *AssessorTool { return &AssessorTool{} }

func (a *AssessorTool) Name() string { return "run_benchmark_assessor" }

func (a *AssessorTool) Description() string {
	return "Run benchmark assessment using the benchmark_assessor CLI tool. Evaluates AI agent responses against ground truth using LLM judges."
}

func (a *AssessorTool) Params() []Param {
	return []Param{
		{Name: "input_csv", Type: TypePath, Description: "Path to benchmark_questions.csv file"},
		{Name: "output_csv", Type: TypePath, Description: "Path to save assessment results CSV"},
		{Name: "judge_agent_md", Type: TypePath, Description: "Path to benchmark-judge.md definition file"},
		{Name: "agent_def_md", Type: TypePath, Description: "Path to benchmark-solver.md definition file"},
	}
}

func (a *AssessorTool) Build(req Request) (Invocation, error) {
	output := req.String("output_csv")
	return Invocation{
		Script: "benchmark_assessor.py",
		Args: []string{
			"--input", req.String("input_csv"),
			"--output", output,
			"--judge-agent", req.String("judge_agent_md"),
			"--agent-def", req.String("agent_def_md"),
		},
		Action: "run benchmark assessor",
		Parse: func(stdout string) (string, envelope.Payload, error) {
			return "Benchmark assessment completed successfully", envelope.Payload{
				"output_file": output,
				"stdout":      stdout,
			}, nil
		},
	}, nil
}
