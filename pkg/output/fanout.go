package output

import "sync"

// FanOut writes each batch to every sink in parallel and reports the first
// error. A failing sink does not stop the others from receiving the batch.
type FanOut struct {
	outputs []Output
}

func NewFanOut(outputs ...Output) *FanOut {
	return &FanOut{outputs: outputs}
}

func (f *FanOut) WriteBatch(entries [][]byte) error {
	var wg sync.WaitGroup
	errs := make([]error, len(f.outputs))

	for i, out := range f.outputs {
		wg.Add(1)
		go func(idx int, o Output) {
			defer wg.Done()
			errs[idx] = o.WriteBatch(entries)
		}(i, out)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
