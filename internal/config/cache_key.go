package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionKey returns the cache key holding one quiz session.
func (r *CacheKeyStruct) SessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// QuestionStatsKey returns the cache key for the aggregated question stats payload.
func (r *CacheKeyStruct) QuestionStatsKey() string {
	return "questions:stats"
}

var CacheKey = NewCacheKeyStruct()
