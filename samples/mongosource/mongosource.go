/*
Package mongosource provides a samples.Source reading samples from the
documents of a MongoDB collection.
*/
package mongosource

import (
	"context"
	"fmt"
	"strings"

	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/pbanos/arbor/samples"
)

// DefaultCollection is the collection samples are read from by default.
const DefaultCollection = "samples"

type source struct {
	session    *mgo.Session
	collection string
	cols       samples.Columns
}

/*
Dial takes a MongoDB connection URL, the collection holding the samples
and the fields to read and returns a samples.Source over the collection
of the URL's database, or an error if it cannot connect.
*/
func Dial(url, collection string, cols samples.Columns) (samples.Source, error) {
	if err := checkFields(cols); err != nil {
		return nil, err
	}
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %v", url, err)
	}
	return New(session, collection, cols)
}

/*
New takes a MongoDB session, the collection holding the samples and the
fields to read and returns a samples.Source over the collection of the
session's default database. The source owns the session and closes it on
Close.
*/
func New(session *mgo.Session, collection string, cols samples.Columns) (samples.Source, error) {
	if err := checkFields(cols); err != nil {
		return nil, err
	}
	if collection == "" {
		collection = DefaultCollection
	}
	return &source{session: session, collection: collection, cols: cols}, nil
}

func checkFields(cols samples.Columns) error {
	fields := append([]string(nil), cols.Features...)
	if cols.Label != "" {
		fields = append(fields, cols.Label)
	}
	for _, f := range fields {
		if f == "" || f == "_id" {
			return fmt.Errorf("invalid field name %q", f)
		}
		if strings.ContainsAny(f, ".$") {
			return fmt.Errorf("invalid field name %q: contains reserved characters %q or %q", f, ".", "$")
		}
	}
	return nil
}

func (s *source) projection() bson.M {
	p := bson.M{"_id": 0}
	for _, f := range s.cols.Features {
		p[f] = 1
	}
	if s.cols.Label != "" {
		p[s.cols.Label] = 1
	}
	return p
}

func (s *source) Read(ctx context.Context) (<-chan samples.Sample, <-chan error) {
	var iter *mgo.Iter
	var n int
	return samples.Stream(ctx, func() (samples.Sample, bool, error) {
		if iter == nil {
			iter = s.session.DB("").C(s.collection).Find(nil).Select(s.projection()).Iter()
		}
		var doc bson.M
		if !iter.Next(&doc) {
			if err := iter.Close(); err != nil {
				return samples.Sample{}, false, fmt.Errorf("reading samples: %v", err)
			}
			return samples.Sample{}, false, nil
		}
		n++
		sample, err := parse(doc, s.cols)
		if err != nil {
			iter.Close()
			return samples.Sample{}, false, fmt.Errorf("sample %d: %v", n, err)
		}
		return sample, true, nil
	})
}

func parse(doc bson.M, cols samples.Columns) (samples.Sample, error) {
	sample := samples.Sample{Values: make([]float64, len(cols.Features))}
	for i, f := range cols.Features {
		v, err := number(doc[f])
		if err != nil {
			return samples.Sample{}, fmt.Errorf("field %q: %v", f, err)
		}
		sample.Values[i] = v
	}
	if cols.Label != "" {
		v, err := number(doc[cols.Label])
		if err != nil {
			return samples.Sample{}, fmt.Errorf("label field %q: %v", cols.Label, err)
		}
		if v != float64(int(v)) {
			return samples.Sample{}, fmt.Errorf("label field %q: %v is not an integer", cols.Label, v)
		}
		sample.Label = int(v)
		sample.HasLabel = true
	}
	return sample, nil
}

func number(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case nil:
		return 0, fmt.Errorf("missing value")
	}
	return 0, fmt.Errorf("%v is a %T, not a number", v, v)
}

func (s *source) Close() error {
	s.session.Close()
	return nil
}
