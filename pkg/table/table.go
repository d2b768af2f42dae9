// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package table assembles the comma separated rows published in a snapshot.
//
// A Row is an ordered list of fields joined once when rendered, so the
// column order of each resource family is fixed by the functions that build
// it and never depends on I/O. Fields are written as-is; values produced by
// the providers do not contain commas or newlines.
package table

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
	"k8s.io/apimachinery/pkg/api/resource"
)

const (
	fieldSep = ","
	rowSep   = "\n"
)

// Row is an ordered sequence of fields.
type Row struct {
	fields []string
}

// NewRow returns a row holding fields in order.
func NewRow(fields ...string) *Row {
	return &Row{fields: append([]string(nil), fields...)}
}

// Add appends a field.
func (r *Row) Add(field string) *Row {
	r.fields = append(r.fields, field)
	return r
}

// AddPair appends a key:value field.
func (r *Row) AddPair(key, value string) *Row {
	return r.Add(key + ":" + value)
}

// Len returns the number of fields.
func (r *Row) Len() int {
	return len(r.fields)
}

// String joins the fields with commas.
func (r *Row) String() string {
	return strings.Join(r.fields, fieldSep)
}

// Table is an ordered list of rows for one resource family.
type Table struct {
	rows []*Row
}

// Append adds rows to the end of the table.
func (t *Table) Append(rows ...*Row) {
	t.rows = append(t.rows, rows...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// String joins the rendered rows with newlines. An empty table renders as "".
func (t *Table) String() string {
	return strings.Join(lo.Map(t.rows, func(r *Row, _ int) string { return r.String() }), rowSep)
}

// Bytes returns the rendered table.
func (t *Table) Bytes() []byte {
	return []byte(t.String())
}

// FormatValue renders a sampled value in its shortest exact decimal form.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatQuantity renders q as an exact plain decimal number in base units, so
// 500m becomes 0.5 and 128Mi becomes 134217728. A nil quantity renders as "".
func FormatQuantity(q *resource.Quantity) string {
	if q == nil {
		return ""
	}
	c := q.DeepCopy()
	s := c.AsDec().String()
	if strings.Contains(s, ".") {
		s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
	}
	return s
}

// MetricKey strips prefix from a metric type to form its column key.
func MetricKey(metricType, prefix string) string {
	return strings.TrimPrefix(metricType, prefix)
}
