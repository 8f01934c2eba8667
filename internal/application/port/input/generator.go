package input

import (
	"context"

	"uigen-bridge/internal/domain/entity"
)

// PromptExecutor runs one generation request end to end: authenticate,
// submit, await completion, extract files.
type PromptExecutor interface {
	Execute(ctx context.Context, req entity.GenerationRequest) (*entity.GenerationResult, error)
}
