// Package session keeps the in-memory registry of running scenes.
//
// Each Session owns its own SceneEngine, so sessions never share a map, an
// actor or an interaction state. Sessions use 4-character hexadecimal IDs,
// matched case-insensitively, and are dropped by CleanupExpiredSessions once
// they have been idle longer than the given age.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", "town", cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// Nothing is persisted; a restart starts with no sessions.
package session
