package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ParticipantSessionKey returns the cache key holding a participant's active token id.
func (r *CacheKeyStruct) ParticipantSessionKey(participantID string) string {
	return fmt.Sprintf("login:%s", participantID)
}

// ParticipantOrderKey returns the cache key for a participant's shuffled question order.
func (r *CacheKeyStruct) ParticipantOrderKey(participantID string) string {
	return fmt.Sprintf("participant:%s:question_order", participantID)
}

// ExamPayloadKey returns the cache key for the participant-facing exam payload.
func (r *CacheKeyStruct) ExamPayloadKey() string {
	return "exam:payload"
}

// ExamAnswerKey returns the cache key for the exam's answer key hash.
func (r *CacheKeyStruct) ExamAnswerKey() string {
	return "exam:key"
}

var CacheKey = NewCacheKeyStruct()
