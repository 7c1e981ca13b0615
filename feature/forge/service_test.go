package forge

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"bibforge/core/algebra"
	"bibforge/core/record"
	"bibforge/core/storage"
	"bibforge/core/storage/mocks"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func entry(doi, title string) record.Record {
	fields := []record.Field{{Name: "title", Value: title}}
	if doi != "" {
		fields = append([]record.Field{{Name: "doi", Value: doi}}, fields...)
	}
	return record.New(fields...)
}

func titles(c record.Collection) []string {
	out := make([]string, 0, c.Len())
	for _, r := range c.Records {
		t, _ := r.Get("title")
		out = append(out, t)
	}
	return out
}

func newService(st storage.Store) (*Service, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewService(st, algebra.DefaultPolicies(), &buf, zap.NewNop()), &buf
}

// written returns the collection passed to the single Write call.
func written(t *testing.T, st *mocks.Store) record.Collection {
	t.Helper()
	for _, call := range st.Calls {
		if call.Method == "Write" {
			return call.Arguments.Get(2).(record.Collection)
		}
	}
	t.Fatal("Write was not called")
	return record.Collection{}
}

// TestService_Merge tests deduplication across two files and the report lines.
func TestService_Merge(t *testing.T) {
	st := new(mocks.Store)
	st.On("Load", mock.Anything, "a.bib").Return(record.NewCollection("a.bib",
		entry("10.1/X", "Foo"), entry("10.1/Y", "Bar"), entry("", "No doi")), nil)
	st.On("Load", mock.Anything, "b.bib").Return(record.NewCollection("b.bib",
		entry("10.1-x", "Foo again"), entry("10.1/Z", "Baz")), nil)
	st.On("Write", mock.Anything, "out.bib", mock.Anything).Return(nil)

	svc, out := newService(st)
	res, err := svc.Run(context.Background(), Request{
		Inputs:    []string{"a.bib", "b.bib"},
		Output:    "out.bib",
		Fields:    []string{"doi"},
		Operation: algebra.OpMerge,
	})
	require.NoError(t, err)
	st.AssertExpectations(t)

	if diff := cmp.Diff([]string{"Foo", "Bar", "Baz"}, titles(written(t, st))); diff != "" {
		t.Errorf("written titles mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"a.bib", "b.bib"}, res.Sources)
	assert.Equal(t, 1, res.Summary.Duplicates)
	assert.Equal(t, map[string]int{"a.bib": 1}, res.Summary.Removed)

	text := out.String()
	assert.Contains(t, text, "Found 5 entries")
	assert.Contains(t, text, "Ignored 1 entries from a.bib that do not contain the field 'doi'.")
	assert.Contains(t, text, "Merged 4 entries from a.bib, b.bib. Found 1 duplicates. Merging result contains 3 entries.")
	assert.Contains(t, text, "Wrote 3 entries to out.bib.")
}

// TestService_MergeSameFileTwice tests that merging a file with itself keeps first occurrences only.
func TestService_MergeSameFileTwice(t *testing.T) {
	a := record.NewCollection("a.bib", entry("10.1/X", "Foo"), entry("10.1/X", "Foo2"))
	st := new(mocks.Store)
	st.On("Load", mock.Anything, "a.bib").Return(a, nil)
	st.On("Write", mock.Anything, "out.bib", mock.Anything).Return(nil)

	svc, _ := newService(st)
	res, err := svc.Run(context.Background(), Request{
		Inputs:    []string{"a.bib", "a.bib"},
		Output:    "out.bib",
		Fields:    []string{"doi"},
		Operation: algebra.OpMerge,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo"}, titles(res.Collection))
	assert.Equal(t, 3, res.Summary.Duplicates)
}

// TestService_Intersection tests that the result comes from the second input, matched case-insensitively.
func TestService_Intersection(t *testing.T) {
	st := new(mocks.Store)
	st.On("Load", mock.Anything, "a.bib").Return(record.NewCollection("a.bib", entry("A", "from a")), nil)
	st.On("Load", mock.Anything, "b.bib").Return(record.NewCollection("b.bib", entry("a", "from b"), entry("c", "other")), nil)
	st.On("Write", mock.Anything, "out.bib", mock.Anything).Return(nil)

	svc, out := newService(st)
	res, err := svc.Run(context.Background(), Request{
		Inputs:    []string{"a.bib", "b.bib"},
		Output:    "out.bib",
		Fields:    []string{"doi"},
		Operation: algebra.OpIntersection,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"from b"}, titles(res.Collection))
	assert.Contains(t, out.String(), "Found 1 common entries in a.bib and b.bib.")
}

// TestService_DifferenceWithThreeInputs tests that the arity check fails before any I/O.
func TestService_DifferenceWithThreeInputs(t *testing.T) {
	st := new(mocks.Store)
	svc, _ := newService(st)

	_, err := svc.Run(context.Background(), Request{
		Inputs:    []string{"a.bib", "b.bib", "c.bib"},
		Output:    "out.bib",
		Fields:    []string{"doi"},
		Operation: algebra.OpDifference,
	})
	require.ErrorIs(t, err, ErrConfiguration)
	assert.ErrorIs(t, err, algebra.ErrOperandCount)
	st.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
	st.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything)
}

// TestService_DirectoryArity tests that directory inputs are counted before loading.
func TestService_DirectoryArity(t *testing.T) {
	st := new(mocks.Store)
	st.On("Enumerate", "refs").Return([]string{"refs/a.bib", "refs/b.bib", "refs/c.bib"}, nil)
	svc, _ := newService(st)

	_, err := svc.Run(context.Background(), Request{
		Dir:       "refs",
		Output:    "out.bib",
		Fields:    []string{"doi"},
		Operation: algebra.OpIntersection,
	})
	require.ErrorIs(t, err, ErrConfiguration)
	st.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}

// TestService_DirectoryErrors tests that enumerator failures surface unchanged.
func TestService_DirectoryErrors(t *testing.T) {
	for _, sentinel := range []error{storage.ErrDirNotFound, storage.ErrNoInputFiles} {
		st := new(mocks.Store)
		st.On("Enumerate", "refs").Return(nil, sentinel)
		svc, _ := newService(st)

		_, err := svc.Run(context.Background(), Request{
			Dir:       "refs",
			Output:    "out.bib",
			Fields:    []string{"doi"},
			Operation: algebra.OpMerge,
		})
		assert.ErrorIs(t, err, sentinel)
	}
}

// TestService_FilterWithoutOperation tests the implicit merge followed by exclude-over-include filtering.
func TestService_FilterWithoutOperation(t *testing.T) {
	st := new(mocks.Store)
	st.On("Enumerate", "refs").Return([]string{"refs/a.bib", "refs/b.bib"}, nil)
	st.On("Load", mock.Anything, "refs/a.bib").Return(record.NewCollection("refs/a.bib",
		entry("10.1/a", "Neural Networks Survey"), entry("10.1/b", "Neural Nets")), nil)
	st.On("Load", mock.Anything, "refs/b.bib").Return(record.NewCollection("refs/b.bib",
		entry("10.1/B", "Neural Nets duplicate"), entry("10.1/c", "Graph theory")), nil)
	st.On("Write", mock.Anything, "out.bib", mock.Anything).Return(nil)

	svc, out := newService(st)
	res, err := svc.Run(context.Background(), Request{
		Dir:     "refs",
		Output:  "out.bib",
		Fields:  []string{"doi", "title"},
		Include: "neural",
		Exclude: "survey",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Neural Nets"}, titles(written(t, st)))
	assert.True(t, res.Summary.Implicit)
	assert.Equal(t, algebra.OpMerge, res.Summary.Operation)
	assert.Equal(t, 3, res.Summary.Result)
	assert.Contains(t, out.String(), "After filtering, result contains 1 of 3.")
}

// TestService_EmptyOperationResultIsNotReplaced tests that an empty intersection is filtered as is.
func TestService_EmptyOperationResultIsNotReplaced(t *testing.T) {
	st := new(mocks.Store)
	st.On("Load", mock.Anything, "a.bib").Return(record.NewCollection("a.bib", entry("1", "one")), nil)
	st.On("Load", mock.Anything, "b.bib").Return(record.NewCollection("b.bib", entry("2", "two")), nil)
	st.On("Write", mock.Anything, "out.bib", mock.Anything).Return(nil)

	svc, out := newService(st)
	res, err := svc.Run(context.Background(), Request{
		Inputs:    []string{"a.bib", "b.bib"},
		Output:    "out.bib",
		Fields:    []string{"doi", "title"},
		Operation: algebra.OpIntersection,
		Include:   "o",
	})
	require.NoError(t, err)
	assert.Zero(t, res.Collection.Len())
	assert.False(t, res.Summary.Implicit)
	assert.Contains(t, out.String(), "Filtering removed all entries.")
	assert.Zero(t, written(t, st).Len())
}

// TestService_ListMode tests that list mode prints the fields and may skip writing.
func TestService_ListMode(t *testing.T) {
	st := new(mocks.Store)
	st.On("Load", mock.Anything, "a.bib").Return(record.NewCollection("a.bib",
		entry("10.1/A", "First"), record.New(record.Field{Name: "doi", Value: "10.1/B"})), nil)

	svc, out := newService(st)
	_, err := svc.Run(context.Background(), Request{
		Inputs: []string{"a.bib"},
		Fields: []string{"doi", "title"},
		List:   true,
	})
	require.NoError(t, err)
	st.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, []string{"10.1/A\tFirst", "10.1/B\t"}, lines[len(lines)-2:])
}

// TestService_Lower tests that the primary field is lower-cased before comparison.
func TestService_Lower(t *testing.T) {
	st := new(mocks.Store)
	st.On("Load", mock.Anything, "a.bib").Return(record.NewCollection("a.bib", entry("10.1/ABC", "t")), nil)
	st.On("Write", mock.Anything, "out.bib", mock.Anything).Return(nil)

	svc, _ := newService(st)
	res, err := svc.Run(context.Background(), Request{
		Inputs:    []string{"a.bib"},
		Output:    "out.bib",
		Fields:    []string{"doi"},
		Operation: algebra.OpMerge,
		Lower:     true,
	})
	require.NoError(t, err)
	v, _ := res.Collection.Records[0].Get("doi")
	assert.Equal(t, "10.1/abc", v)
}

// TestService_Failures tests that load and write errors abort the run.
func TestService_Failures(t *testing.T) {
	t.Run("Load", func(t *testing.T) {
		st := new(mocks.Store)
		st.On("Load", mock.Anything, "a.bib").Return(nil, storage.ErrParse)
		svc, _ := newService(st)

		_, err := svc.Run(context.Background(), Request{
			Inputs: []string{"a.bib"}, Output: "out.bib", Fields: []string{"doi"}, Operation: algebra.OpMerge,
		})
		assert.ErrorIs(t, err, storage.ErrParse)
		st.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Write", func(t *testing.T) {
		st := new(mocks.Store)
		st.On("Load", mock.Anything, "a.bib").Return(record.NewCollection("a.bib"), nil)
		st.On("Write", mock.Anything, "out.bib", mock.Anything).Return(assert.AnError)
		svc, _ := newService(st)

		_, err := svc.Run(context.Background(), Request{
			Inputs: []string{"a.bib"}, Output: "out.bib", Fields: []string{"doi"}, Operation: algebra.OpMerge,
		})
		assert.ErrorIs(t, err, assert.AnError)
	})
}

// TestRequest_Validate tests the configuration checks.
func TestRequest_Validate(t *testing.T) {
	base := Request{Inputs: []string{"a.bib"}, Output: "out.bib", Fields: []string{"doi"}, Operation: algebra.OpMerge}

	tests := []struct {
		name   string
		mutate func(r *Request)
		ok     bool
	}{
		{"Valid", func(r *Request) {}, true},
		{"NoField", func(r *Request) { r.Fields = nil }, false},
		{"EmptyField", func(r *Request) { r.Fields = []string{"doi", ""} }, false},
		{"FilesAndDir", func(r *Request) { r.Dir = "refs" }, false},
		{"NoInputs", func(r *Request) { r.Inputs = nil }, false},
		{"NothingToDo", func(r *Request) { r.Operation = "" }, false},
		{"FilterOnly", func(r *Request) { r.Operation = ""; r.Include = "x" }, true},
		{"ListWithoutOutput", func(r *Request) { r.Operation = ""; r.Output = ""; r.List = true }, true},
		{"MissingOutput", func(r *Request) { r.Output = "" }, false},
		{"IntersectionOneInput", func(r *Request) { r.Operation = algebra.OpIntersection }, false},
		{"BadPattern", func(r *Request) { r.Exclude = "(" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			req.Inputs = append([]string(nil), base.Inputs...)
			tt.mutate(&req)
			_, err := req.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrConfiguration)
			}
		})
	}
}

// TestEnsureResult tests that the merge is only synthesized when no operation ran.
func TestEnsureResult(t *testing.T) {
	colls := []record.Collection{record.NewCollection("a", entry("10.1/q", "x"), entry("10.1/Q", "y"))}

	ran := algebra.Outcome{Operation: algebra.OpDifference, Result: record.NewCollection("a")}
	out, implicit, err := EnsureResult(&ran, colls, "doi", algebra.DefaultPolicies())
	require.NoError(t, err)
	assert.False(t, implicit)
	assert.Equal(t, algebra.OpDifference, out.Operation)
	assert.Zero(t, out.Result.Len())

	out, implicit, err = EnsureResult(nil, colls, "doi", algebra.DefaultPolicies())
	require.NoError(t, err)
	assert.True(t, implicit)
	assert.Equal(t, []string{"x"}, titles(out.Result))
}
