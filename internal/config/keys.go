package config

import "fmt"

// KeyStruct builds the redis keys used across the application.
type KeyStruct struct{}

// SessionKey is the redis key holding the principal bound to a session.
func (k *KeyStruct) SessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// OpLogQueue is the redis list drained by the op-log worker.
func (k *KeyStruct) OpLogQueue() string {
	return "oplog_queue"
}

// Key is the shared key builder.
var Key = &KeyStruct{}
