package main

import (
	"encoding/json"
	"os"

	"github.com/tetrisdev/SPTServer/internal/entities/raids"
	"github.com/tetrisdev/SPTServer/internal/errors"
	"github.com/tetrisdev/SPTServer/internal/orchestrators/location"
	"github.com/tetrisdev/SPTServer/internal/pkg/clock"
	"github.com/tetrisdev/SPTServer/internal/pkg/idgen"
	"github.com/tetrisdev/SPTServer/internal/pkg/random"
	locationsrepo "github.com/tetrisdev/SPTServer/internal/repositories/locations"
	"github.com/tetrisdev/SPTServer/internal/repositories/templates"
	"github.com/tetrisdev/SPTServer/internal/services/seasonal"
)

// contentData holds the loaded game content every command needs.
type contentData struct {
	templateRepo *templates.InMemoryRepository
	locationRepo *locationsrepo.InMemoryRepository
	seasonal     seasonal.Service
}

// loadContent reads the template database, the per-map loot tables, and the
// optional seasonal event calendar.
func loadContent(templatesPath, locationsDir, eventsPath string) (*contentData, error) {
	templateRepo, err := templates.LoadFile(templatesPath)
	if err != nil {
		return nil, err
	}

	locationRepo, err := locationsrepo.LoadDirectory(locationsDir)
	if err != nil {
		return nil, err
	}

	var events []seasonal.Event
	if eventsPath != "" {
		raw, err := os.ReadFile(eventsPath) // #nosec G304 // operator-supplied data path
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read event calendar %s", eventsPath)
		}
		if err := json.Unmarshal(raw, &events); err != nil {
			return nil, errors.Wrapf(err, "failed to parse event calendar %s", eventsPath)
		}
	}

	seasonalSvc, err := seasonal.New(&seasonal.Config{
		Clock:  clock.New(),
		Events: events,
	})
	if err != nil {
		return nil, err
	}

	return &contentData{
		templateRepo: templateRepo,
		locationRepo: locationRepo,
		seasonal:     seasonalSvc,
	}, nil
}

// newPass builds a single-use orchestrator. The random source is ordered, so
// every generation pass gets its own instance.
func (c *contentData) newPass(seed int64, useSeed bool) (location.Service, error) {
	rnd := random.New()
	if useSeed {
		rnd = random.NewSeeded(seed)
	}

	return location.NewOrchestrator(&location.Config{
		TemplateRepo: c.templateRepo,
		LocationRepo: c.locationRepo,
		Seasonal:     c.seasonal,
		Random:       rnd,
		IDGenerator:  idgen.NewUUID(""),
	})
}

// toLayout converts a generation pass result into the cacheable layout
// entity.
func toLayout(raidID, locationID string, out *location.GenerateLootOutput) *raids.LootLayout {
	layout := &raids.LootLayout{
		RaidID:     raidID,
		LocationID: locationID,
		Containers: make([]raids.ContainerLoot, 0, len(out.Containers)),
		LooseLoot:  make([]raids.SpawnPointLoot, 0, len(out.LooseLoot)),
	}
	for _, c := range out.Containers {
		layout.Containers = append(layout.Containers, raids.ContainerLoot{
			ContainerID: c.ContainerID,
			TemplateID:  c.TemplateID,
			Items:       c.Items,
		})
	}
	for _, sp := range out.LooseLoot {
		layout.LooseLoot = append(layout.LooseLoot, raids.SpawnPointLoot{
			LocationID: sp.LocationID,
			Position:   sp.Position,
			Items:      sp.Items,
		})
	}
	return layout
}
