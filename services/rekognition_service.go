package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/sunfrisky19/model-meals-workouts/models"
)

type customLabelsAPI interface {
	DetectCustomLabels(ctx context.Context, in *rekognition.DetectCustomLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectCustomLabelsOutput, error)
	DescribeProjectVersions(ctx context.Context, in *rekognition.DescribeProjectVersionsInput, optFns ...func(*rekognition.Options)) (*rekognition.DescribeProjectVersionsOutput, error)
}

// RekognitionModel serves the ingredient classifier as an Amazon Rekognition Custom Labels project version.
type RekognitionModel struct {
	client     customLabelsAPI
	versionArn string
	shape      []int
	index      map[string]int
}

func NewRekognitionModel(ctx context.Context, region, projectArn, versionArn string, inputShape []int, labels []models.ClassLabel) (*RekognitionModel, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return newRekognitionModel(ctx, rekognition.NewFromConfig(cfg), projectArn, versionArn, inputShape, labels)
}

func newRekognitionModel(ctx context.Context, client customLabelsAPI, projectArn, versionArn string, inputShape []int, labels []models.ClassLabel) (*RekognitionModel, error) {
	m := &RekognitionModel{
		client:     client,
		versionArn: versionArn,
		shape:      append([]int(nil), inputShape...),
		index:      make(map[string]int, len(labels)),
	}
	for i, l := range labels {
		m.index[strings.ToLower(string(l))] = i
	}
	if projectArn == "" {
		return m, nil
	}

	out, err := client.DescribeProjectVersions(ctx, &rekognition.DescribeProjectVersionsInput{
		ProjectArn: aws.String(projectArn),
	})
	if err != nil {
		return nil, fmt.Errorf("describe project versions: %w", err)
	}
	for _, v := range out.ProjectVersionDescriptions {
		if aws.ToString(v.ProjectVersionArn) != versionArn {
			continue
		}
		if v.Status != types.ProjectVersionStatusRunning {
			return nil, fmt.Errorf("project version is %s, not RUNNING", v.Status)
		}
		return m, nil
	}
	return nil, fmt.Errorf("project version %s not found", versionArn)
}

func (m *RekognitionModel) Name() string { return "rekognition" }

func (m *RekognitionModel) InputShape() []int { return m.shape }

// Predict maps the returned custom label confidences (0-100) onto the class vector.
func (m *RekognitionModel) Predict(ctx context.Context, t Tensor) ([]float32, error) {
	data, err := encodeJPEG(t)
	if err != nil {
		return nil, err
	}

	out, err := m.client.DetectCustomLabels(ctx, &rekognition.DetectCustomLabelsInput{
		ProjectVersionArn: aws.String(m.versionArn),
		Image:             &types.Image{Bytes: data},
		MinConfidence:     aws.Float32(0),
		MaxResults:        aws.Int32(int32(len(m.index))),
	})
	if err != nil {
		var badFormat *types.InvalidImageFormatException
		var tooLarge *types.ImageTooLargeException
		if errors.As(err, &badFormat) || errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: %v", ErrBadInput, err)
		}
		return nil, err
	}

	scores := make([]float32, len(m.index))
	for _, l := range out.CustomLabels {
		i, ok := m.index[strings.ToLower(aws.ToString(l.Name))]
		if !ok || l.Confidence == nil {
			continue
		}
		scores[i] = *l.Confidence / 100
	}
	return scores, nil
}

// encodeJPEG renders an NHWC image tensor back to JPEG bytes.
func encodeJPEG(t Tensor) ([]byte, error) {
	if len(t.Shape) != 4 || t.Shape[3] != 3 {
		return nil, fmt.Errorf("%w: tensor shape %v is not an RGB image", ErrBadInput, t.Shape)
	}
	h, w := t.Shape[1], t.Shape[2]
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: clampByte(t.Data[i]), G: clampByte(t.Data[i+1]), B: clampByte(t.Data[i+2]), A: 255})
			i += 3
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func clampByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}
