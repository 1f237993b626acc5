package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a user's active session JTI.
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// CatalogKey returns the cache key for the course catalog of one term.
func (r *CacheKeyStruct) CatalogKey(academicYear int, term string) string {
	return fmt.Sprintf("catalog:%d:%s", academicYear, term)
}

// UserNotifyChannel returns the pub/sub channel for a user's live
// notification stream.
func (r *CacheKeyStruct) UserNotifyChannel(userID int) string {
	return fmt.Sprintf("user:%d:notify", userID)
}

var CacheKey = NewCacheKeyStruct()
