// Package service provides the scene layer every transport talks to.
//
// SceneService wraps the session registry and the config manager. It creates
// scenes from named configurations, advances them with held input in fixed
// ticks, forwards inspect and close actions to the proximity controller, and
// converts the resulting interaction transitions into SceneEvents.
//
// A single RWMutex serializes mutations across sessions; reads share it.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	svc := service.NewSceneService(sessionMgr, configMgr)
//
//	info, err := svc.CreateSession(ctx, "town")
//	result, err := svc.Step(ctx, info.ID, motion.Input{Up: true}, 30)
package service
