package session

import (
	"context"
	"sync"
	"testing"

	"github.com/lmaccart/hack-rice15/game/config"
	"github.com/lmaccart/hack-rice15/game/service"
)

// staticConfigs serves a single default config
type staticConfigs struct {
	cfg *config.SceneConfig
}

func (c staticConfigs) LoadConfig(name string) (*config.SceneConfig, error) {
	return c.cfg, nil
}

func (c staticConfigs) ListConfigs() ([]*service.ConfigInfo, error) {
	return nil, nil
}

func (c staticConfigs) GetDefault() *config.SceneConfig {
	return c.cfg
}

func (c staticConfigs) SaveConfig(name string, cfg *config.SceneConfig) error {
	return nil
}

// Run with -race: reads through the service refresh the access time on the
// shared session.
func TestSceneService_ConcurrentReads(t *testing.T) {
	svc := service.NewSceneService(NewManager(), staticConfigs{cfg: createTestConfig()})
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				var err error
				switch (i + j) % 4 {
				case 0:
					_, err = svc.GetSession(ctx, info.ID)
				case 1:
					_, err = svc.GetSceneState(ctx, info.ID)
				case 2:
					_, err = svc.GetMap(ctx, info.ID)
				default:
					_, err = svc.RenderMap(ctx, info.ID)
				}
				if err != nil {
					t.Errorf("Read failed: %v", err)
					return
				}
				if _, err := svc.ListSessions(ctx); err != nil {
					t.Errorf("ListSessions failed: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
