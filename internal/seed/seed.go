// Package seed loads room type and room fixtures from a YAML file at startup.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"hotelapi/internal/service"
)

// File is the fixture layout. Rooms reference their type by name.
type File struct {
	RoomTypes []RoomType `yaml:"room_types"`
	Rooms     []Room     `yaml:"rooms"`
}

type RoomType struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Room struct {
	Name         string   `yaml:"name"`
	RoomTypeName string   `yaml:"room_type_name"`
	Price        float64  `yaml:"price"`
	Capacity     int      `yaml:"capacity"`
	Description  string   `yaml:"description"`
	Amenities    []string `yaml:"amenities"`
}

// Result counts what a load created and skipped.
type Result struct {
	RoomTypesCreated int
	RoomTypesSkipped int
	RoomsCreated     int
	RoomsSkipped     int
}

// Parse decodes a fixture, rejecting unknown keys.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return &f, nil
}

// LoadFile parses path and applies it through the services.
func LoadFile(ctx context.Context, path string, types service.RoomTypeService, rooms service.RoomService, log *zap.Logger) (*Result, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer fh.Close()

	f, err := Parse(fh)
	if err != nil {
		return nil, err
	}
	res, err := Apply(ctx, f, types, rooms)
	if err != nil {
		return nil, err
	}
	log.Info("seed loaded",
		zap.String("file", path),
		zap.Int("room_types_created", res.RoomTypesCreated),
		zap.Int("room_types_skipped", res.RoomTypesSkipped),
		zap.Int("rooms_created", res.RoomsCreated),
		zap.Int("rooms_skipped", res.RoomsSkipped),
	)
	return res, nil
}

// Apply creates the fixture's room types, skipping names that already exist, and then
// creates rooms only for room types created by this run, so that repeated loads do not
// duplicate rooms.
func Apply(ctx context.Context, f *File, types service.RoomTypeService, rooms service.RoomService) (*Result, error) {
	res := &Result{}
	created := make(map[string]string, len(f.RoomTypes))

	for _, rt := range f.RoomTypes {
		got, err := types.Create(ctx, service.RoomTypeInput{Name: rt.Name, Description: rt.Description})
		if errors.Is(err, service.ErrConflict) {
			res.RoomTypesSkipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("room type %q: %w", rt.Name, err)
		}
		created[got.Name] = got.ID
		res.RoomTypesCreated++
	}

	for _, r := range f.Rooms {
		typeID, ok := created[r.RoomTypeName]
		if !ok {
			// The type predates this run; its rooms were seeded then.
			if _, err := types.GetByName(ctx, r.RoomTypeName); err != nil {
				return nil, fmt.Errorf("room %q: room type %q: %w", r.Name, r.RoomTypeName, err)
			}
			res.RoomsSkipped++
			continue
		}
		in := service.RoomInput{
			Name:        r.Name,
			RoomType:    typeID,
			Price:       &r.Price,
			Description: r.Description,
			Amenities:   r.Amenities,
		}
		if r.Capacity != 0 {
			in.Capacity = &r.Capacity
		}
		if _, err := rooms.Create(ctx, in); err != nil {
			return nil, fmt.Errorf("room %q: %w", r.Name, err)
		}
		res.RoomsCreated++
	}
	return res, nil
}
