package service

import "errors"

var (
	ErrUserNameEmpty = errors.New("name is required")
	ErrUserConflict  = errors.New("user already exists")

	ErrMemoryNotFound     = errors.New("memory not found")
	ErrMemoryContentEmpty = errors.New("content is required")
	ErrNoUpdateFields     = errors.New("no fields to update")
	ErrInvalidEmotion     = errors.New("invalid emotion")

	ErrRitualNotFound     = errors.New("ritual not found")
	ErrNoRitualFound      = errors.New("no suitable ritual found")
	ErrInvalidCategory    = errors.New("invalid ritual_type")
	ErrInvalidState       = errors.New("invalid planet state")
	ErrEmotionPathMissing = errors.New("emotion_path is required")

	ErrClassifierUnavailable = errors.New("emotion classifier unavailable")
)
