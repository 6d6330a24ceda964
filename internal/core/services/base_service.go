package services

import (
	"context"
	"log/slog"

	"github.com/billkhata/billkhata/internal/core/domain"
	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
	"github.com/billkhata/billkhata/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	RoomAuthorizer portssvc.RoomAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// AuthorizeUser checks if a user has the required role for a room
func (s *BaseService) AuthorizeUser(ctx context.Context, userID, roomID string, requiredRole domain.UserRoomRole) error {
	if s.RoomAuthorizer != nil {
		return s.RoomAuthorizer.AuthorizeRoomAction(ctx, userID, roomID, requiredRole)
	}
	s.LogDebug(ctx, "No room authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("room_id", roomID),
		slog.String("required_role", string(requiredRole)))
	return nil
}
