package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/pendulum/internal/dynamo"
	"github.com/san-kum/pendulum/internal/storage"
)

type Data struct {
	Run    storage.RunMetadata `json:"run"`
	Times  []float64           `json:"times"`
	States [][]float64         `json:"states"`
}

func newData(meta storage.RunMetadata, states []dynamo.State, times []float64) Data {
	data := Data{
		Run:    meta,
		Times:  times,
		States: make([][]float64, len(states)),
	}
	for i, s := range states {
		data.States[i] = s
	}
	return data
}

func WriteJSON(w io.Writer, meta storage.RunMetadata, states []dynamo.State, times []float64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newData(meta, states, times))
}

func JSONFile(path string, meta storage.RunMetadata, states []dynamo.State, times []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, meta, states, times)
}
