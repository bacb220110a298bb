package services

import (
	"bytes"
	"context"
	"errors"
	"image/jpeg"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCustomLabels struct {
	status   types.ProjectVersionStatus
	labels   []types.CustomLabel
	err      error
	lastJPEG []byte
}

func (f *fakeCustomLabels) DetectCustomLabels(ctx context.Context, in *rekognition.DetectCustomLabelsInput, _ ...func(*rekognition.Options)) (*rekognition.DetectCustomLabelsOutput, error) {
	f.lastJPEG = in.Image.Bytes
	if f.err != nil {
		return nil, f.err
	}
	return &rekognition.DetectCustomLabelsOutput{CustomLabels: f.labels}, nil
}

func (f *fakeCustomLabels) DescribeProjectVersions(ctx context.Context, in *rekognition.DescribeProjectVersionsInput, _ ...func(*rekognition.Options)) (*rekognition.DescribeProjectVersionsOutput, error) {
	return &rekognition.DescribeProjectVersionsOutput{
		ProjectVersionDescriptions: []types.ProjectVersionDescription{
			{ProjectVersionArn: aws.String("arn:version/1"), Status: f.status},
		},
	}, nil
}

func TestRekognitionModelStatusCheck(t *testing.T) {
	ctx := context.Background()
	shape := ImageShape(4, 4)

	_, err := newRekognitionModel(ctx, &fakeCustomLabels{status: types.ProjectVersionStatusStopped}, "arn:project", "arn:version/1", shape, testLabels)
	assert.ErrorContains(t, err, "not RUNNING")

	_, err = newRekognitionModel(ctx, &fakeCustomLabels{status: types.ProjectVersionStatusRunning}, "arn:project", "arn:version/2", shape, testLabels)
	assert.ErrorContains(t, err, "not found")

	m, err := newRekognitionModel(ctx, &fakeCustomLabels{status: types.ProjectVersionStatusRunning}, "arn:project", "arn:version/1", shape, testLabels)
	require.NoError(t, err)
	assert.Equal(t, "rekognition", m.Name())
}

func TestRekognitionModelPredict(t *testing.T) {
	api := &fakeCustomLabels{labels: []types.CustomLabel{
		{Name: aws.String("telur"), Confidence: aws.Float32(97)},
		{Name: aws.String("Tomat"), Confidence: aws.Float32(2)},
		{Name: aws.String("Unknown"), Confidence: aws.Float32(50)},
	}}
	m, err := newRekognitionModel(context.Background(), api, "", "arn:version/1", ImageShape(4, 4), testLabels)
	require.NoError(t, err)

	data := make([]float32, 4*4*3)
	for i := range data {
		data[i] = 128
	}
	tensor, err := NewTensor(ImageShape(4, 4), data)
	require.NoError(t, err)

	scores, err := m.Predict(context.Background(), tensor)
	require.NoError(t, err)
	require.Len(t, scores, len(testLabels))
	assert.InDelta(t, 0.97, scores[5], 1e-6)
	assert.InDelta(t, 0.02, scores[8], 1e-6)
	assert.Zero(t, scores[0])

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(api.lastJPEG))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Width)
	assert.Equal(t, 4, cfg.Height)
}

func TestRekognitionModelBadImage(t *testing.T) {
	api := &fakeCustomLabels{err: &types.InvalidImageFormatException{Message: aws.String("bad")}}
	m, err := newRekognitionModel(context.Background(), api, "", "arn:version/1", ImageShape(2, 2), testLabels)
	require.NoError(t, err)

	tensor, err := NewTensor(ImageShape(2, 2), make([]float32, 12))
	require.NoError(t, err)
	_, err = m.Predict(context.Background(), tensor)
	assert.ErrorIs(t, err, ErrBadInput)

	api.err = errors.New("throttled")
	_, err = m.Predict(context.Background(), tensor)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadInput)
}
