package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// TFServingModel calls a TensorFlow Serving REST endpoint hosting the ingredient model.
type TFServingModel struct {
	baseURL string
	name    string
	shape   []int
	client  *http.Client
}

type modelStatusResponse struct {
	ModelVersionStatus []struct {
		Version string `json:"version"`
		State   string `json:"state"`
		Status  struct {
			ErrorCode    string `json:"error_code"`
			ErrorMessage string `json:"error_message"`
		} `json:"status"`
	} `json:"model_version_status"`
}

type predictRequest struct {
	Instances [][][][]float32 `json:"instances"`
}

type predictResponse struct {
	Predictions [][]float32 `json:"predictions"`
	Error       string      `json:"error"`
}

// LoadTFServingModel checks that the named model has an AVAILABLE version before handing it out.
func LoadTFServingModel(ctx context.Context, baseURL, name string, inputShape []int, timeout time.Duration) (*TFServingModel, error) {
	if len(inputShape) != 4 || inputShape[0] != 1 {
		return nil, fmt.Errorf("tfserving: unsupported input shape %v", inputShape)
	}
	m := &TFServingModel{
		baseURL: strings.TrimRight(baseURL, "/"),
		name:    name,
		shape:   append([]int(nil), inputShape...),
		client:  &http.Client{Timeout: timeout},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/v1/models/"+name, nil)
	if err != nil {
		return nil, err
	}
	body, status, err := m.do(req)
	if err != nil {
		return nil, fmt.Errorf("tfserving status request: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("tfserving status error (%d): %s", status, preview(body))
	}

	var sr modelStatusResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("decode tfserving status: %w", err)
	}
	for _, v := range sr.ModelVersionStatus {
		if v.State == "AVAILABLE" {
			return m, nil
		}
	}
	return nil, fmt.Errorf("tfserving model %q has no AVAILABLE version", name)
}

func (m *TFServingModel) Name() string { return "tfserving/" + m.name }

func (m *TFServingModel) InputShape() []int { return m.shape }

func (m *TFServingModel) Predict(ctx context.Context, t Tensor) ([]float32, error) {
	b, err := json.Marshal(predictRequest{Instances: [][][][]float32{toHWC(t, m.shape)}})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/v1/models/%s:predict", m.baseURL, m.name), bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	body, status, err := m.do(req)
	if err != nil {
		return nil, fmt.Errorf("tfserving predict request: %w", err)
	}

	var pr predictResponse
	decodeErr := json.Unmarshal(body, &pr)
	if status != http.StatusOK {
		msg := preview(body)
		if decodeErr == nil && pr.Error != "" {
			msg = pr.Error
		}
		if status == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %s", ErrBadInput, msg)
		}
		return nil, fmt.Errorf("tfserving predict error (%d): %s", status, msg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode tfserving response: %w | body: %s", decodeErr, preview(body))
	}
	if len(pr.Predictions) == 0 {
		return nil, errors.New("empty predictions from tfserving")
	}
	return pr.Predictions[0], nil
}

func (m *TFServingModel) do(req *http.Request) ([]byte, int, error) {
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

// toHWC reshapes a single-image NHWC tensor into nested [h][w][c] slices.
func toHWC(t Tensor, shape []int) [][][]float32 {
	h, w, c := shape[1], shape[2], shape[3]
	out := make([][][]float32, h)
	i := 0
	for y := 0; y < h; y++ {
		row := make([][]float32, w)
		for x := 0; x < w; x++ {
			row[x] = t.Data[i : i+c : i+c]
			i += c
		}
		out[y] = row
	}
	return out
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
