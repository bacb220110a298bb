package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/sunfrisky19/model-meals-workouts/models"
	"github.com/sunfrisky19/model-meals-workouts/utils"
)

// Snapshots use the realtime-database export layout: an object keyed by push id.
//
//	{"-Nx1": {"name": "...", "diet_type": "Cutting", "bahan_resep_pilihan": "Telur, Tomat"}, ...}
//
// Records come back sorted by key, which for push ids is insertion order.

func decodeMealSnapshot(data []byte) ([]models.Meal, error) {
	var raw map[string]models.Meal
	if err := decodeSnapshot(data, &raw); err != nil {
		return nil, err
	}
	out := make([]models.Meal, 0, len(raw))
	for _, k := range sortedKeys(raw) {
		m := raw[k]
		m.Key = k
		out = append(out, m)
	}
	return out, nil
}

func decodeWorkoutSnapshot(data []byte) ([]models.Workout, error) {
	var raw map[string]models.Workout
	if err := decodeSnapshot(data, &raw); err != nil {
		return nil, err
	}
	out := make([]models.Workout, 0, len(raw))
	for _, k := range sortedKeys(raw) {
		w := raw[k]
		w.Key = k
		out = append(out, w)
	}
	return out, nil
}

// DecodeCorpusExport reads a full database export holding both collections.
func DecodeCorpusExport(data []byte) ([]models.Meal, []models.Workout, error) {
	var export struct {
		Meals    json.RawMessage `json:"meals"`
		Workouts json.RawMessage `json:"workouts"`
	}
	if err := decodeSnapshot(data, &export); err != nil {
		return nil, nil, err
	}
	meals, err := decodeMealSnapshot(export.Meals)
	if err != nil {
		return nil, nil, fmt.Errorf("meals: %w", err)
	}
	workouts, err := decodeWorkoutSnapshot(export.Workouts)
	if err != nil {
		return nil, nil, fmt.Errorf("workouts: %w", err)
	}
	return meals, workouts, nil
}

func decodeSnapshot(data []byte, v any) error {
	// an exported empty node is the literal null
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FileCorpus reads meals.json and workouts.json from a directory on every call.
type FileCorpus struct {
	dir string
}

func NewFileCorpus(dir string) *FileCorpus {
	return &FileCorpus{dir: dir}
}

func (c *FileCorpus) Meals(ctx context.Context) ([]models.Meal, error) {
	data, err := c.read(mealsCollection)
	if err != nil {
		return nil, err
	}
	return decodeMealSnapshot(data)
}

func (c *FileCorpus) Workouts(ctx context.Context) ([]models.Workout, error) {
	data, err := c.read(workoutsCollection)
	if err != nil {
		return nil, err
	}
	return decodeWorkoutSnapshot(data)
}

func (c *FileCorpus) read(collection string) ([]byte, error) {
	data, err := os.ReadFile(snapshotFile(c.dir, collection))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// S3Corpus reads the same snapshots from <bucket>/<prefix><collection>.json.
type S3Corpus struct {
	api    utils.S3GetObjectAPI
	bucket string
	prefix string
}

func NewS3ObjectGetter(ctx context.Context, region string) (utils.S3GetObjectAPI, error) {
	return utils.NewS3Client(ctx, region)
}

func NewS3Corpus(api utils.S3GetObjectAPI, bucket, prefix string) *S3Corpus {
	return &S3Corpus{api: api, bucket: bucket, prefix: prefix}
}

func (c *S3Corpus) Meals(ctx context.Context) ([]models.Meal, error) {
	data, err := c.read(ctx, mealsCollection)
	if err != nil {
		return nil, err
	}
	return decodeMealSnapshot(data)
}

func (c *S3Corpus) Workouts(ctx context.Context) ([]models.Workout, error) {
	data, err := c.read(ctx, workoutsCollection)
	if err != nil {
		return nil, err
	}
	return decodeWorkoutSnapshot(data)
}

func (c *S3Corpus) read(ctx context.Context, collection string) ([]byte, error) {
	key := path.Join(c.prefix, collection+".json")
	data, _, err := utils.GetObjectBytes(ctx, c.api, c.bucket, key)
	return data, err
}
