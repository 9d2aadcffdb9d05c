// Package lem holds shared output writers for the landscape-evolution
// modelling toolkit; the numerical components live in flowdir and overland.
package lem

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
)

// WriteFloats dumps a node or link field as little-endian float32.
func WriteFloats(fp string, f []float64) error {
	f32 := make([]float32, len(f))
	for i, v := range f {
		f32[i] = float32(v)
	}
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, f32); err != nil {
		return fmt.Errorf("WriteFloats failed: %v", err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("WriteFloats failed: %v", err)
	}
	return nil
}

// WriteInts dumps an id field (receivers, contributing counts) as
// little-endian int32.
func WriteInts(fp string, ii []int) error {
	i32 := make([]int32, len(ii))
	for i, v := range ii {
		i32[i] = int32(v)
	}
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, i32); err != nil {
		return fmt.Errorf("WriteInts failed: %v", err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("WriteInts failed: %v", err)
	}
	return nil
}
