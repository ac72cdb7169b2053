package retry

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"regexp"
	"strings"
	"syscall"
)

// Firebird ISC status codes for conditions worth another attempt.
const (
	iscNetworkError     = "335544721" // unable to complete network request
	iscNetworkReadError = "335544726" // error reading data from the connection
	iscLostConnection   = "335544741" // connection lost to database
	iscShutdown         = "335544528" // database shutdown
	iscAttShutdown      = "335544856" // connection shutdown
	iscLockConflict     = "335544345" // lock conflict on no wait transaction
	iscDeadlock         = "335544336" // deadlock
	iscLockTimeout      = "335544510" // lock time-out on wait transaction
)

var transientISCCodes = map[string]struct{}{
	iscNetworkError:     {},
	iscNetworkReadError: {},
	iscLostConnection:   {},
	iscShutdown:         {},
	iscAttShutdown:      {},
	iscLockConflict:     {},
	iscDeadlock:         {},
	iscLockTimeout:      {},
}

var iscCodePattern = regexp.MustCompile(`\b(3355\d{5})\b`)

var transientPatterns = []string{
	"connection refused",
	"connection reset",
	"connection timeout",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"broken pipe",
	"unable to complete network request",
	"error reading data from the connection",
	"connection lost to database",
	"connection shutdown",
	"database shutdown",
	"lock conflict",
	"deadlock",
}

// FirebirdErrorClassifier implements dbmeta.ErrorClassifier for errors
// surfaced while connecting to a Firebird server.
type FirebirdErrorClassifier struct{}

// NewFirebirdErrorClassifier creates a new Firebird error classifier.
func NewFirebirdErrorClassifier() *FirebirdErrorClassifier {
	return &FirebirdErrorClassifier{}
}

// IsTransient reports whether err is temporary and the operation may be retried.
// Cancellation is never transient; the caller decided to stop.
func (c *FirebirdErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}
	if c.isNetworkError(err) {
		return true
	}
	if c.hasTransientCode(err) {
		return true
	}
	return c.matchesTransientMessage(err)
}

func (c *FirebirdErrorClassifier) isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && (dnsErr.IsTemporary || dnsErr.IsTimeout) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return true
		}
		switch {
		case errors.Is(opErr.Err, syscall.ECONNREFUSED),
			errors.Is(opErr.Err, syscall.ECONNRESET),
			errors.Is(opErr.Err, syscall.ENETUNREACH),
			errors.Is(opErr.Err, syscall.EHOSTUNREACH):
			return true
		}
	}
	return false
}

func (c *FirebirdErrorClassifier) hasTransientCode(err error) bool {
	for _, m := range iscCodePattern.FindAllStringSubmatch(err.Error(), -1) {
		if _, ok := transientISCCodes[m[1]]; ok {
			return true
		}
	}
	return false
}

func (c *FirebirdErrorClassifier) matchesTransientMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
