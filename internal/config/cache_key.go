package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AdminSessionKey returns the cache key for an admin's login session.
func (r *CacheKeyStruct) AdminSessionKey(adminID int) string {
	return fmt.Sprintf("login:admin:%d", adminID)
}

// OverviewReportKey returns the cache key for the composed overview report.
func (r *CacheKeyStruct) OverviewReportKey() string {
	return "overview:report"
}

// BillingRunLockKey returns the cache key guarding one billed month's run.
func (r *CacheKeyStruct) BillingRunLockKey(month string) string {
	return fmt.Sprintf("billing:run:%s:lock", month)
}

var CacheKey = NewCacheKeyStruct()
