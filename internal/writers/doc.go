// Package writers turns an engine result into serialized output.
//
// Design:
//   - Writers own all presentation knowledge (gcode text, JSONL edit reports).
//   - Engine stays domain-only; Pipeline stays orchestration-only.
//   - JSONL goes through pkg/api (v1) for a stable wire format.
//   - A reader that closes early (head, a killed pager) is not an error.
package writers
