package engine

import (
	"persontable/internal/models"

	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

// ColumnStore holds the master record set in Struct-of-Arrays format.
// It is built once and never mutated; every view reads from it.
type ColumnStore struct {
	// Data Columns
	RecordIDs  *array.Int32
	FirstNames *array.String
	LastNames  *array.String
	Ages       *array.Int32

	// Dictionary Encoded gender (0..N)
	GenderIDs  []int32
	GenderDict []string
}

// NewColumnStore builds the store from records in load order. Record ids
// are assigned here, 1..N, and stay fixed for the lifetime of the store.
func NewColumnStore(records []models.Record) *ColumnStore {
	mem := memory.NewGoAllocator()

	idB := array.NewInt32Builder(mem)
	defer idB.Release()
	firstB := array.NewStringBuilder(mem)
	defer firstB.Release()
	lastB := array.NewStringBuilder(mem)
	defer lastB.Release()
	ageB := array.NewInt32Builder(mem)
	defer ageB.Release()

	store := &ColumnStore{
		GenderIDs: make([]int32, len(records)),
	}
	genderMap := make(map[string]int32)

	for i, r := range records {
		idB.Append(int32(i + 1))
		firstB.Append(r.Name.First)
		lastB.Append(r.Name.Last)
		ageB.Append(int32(r.Age))

		gid, ok := genderMap[r.Gender]
		if !ok {
			gid = int32(len(store.GenderDict))
			store.GenderDict = append(store.GenderDict, r.Gender)
			genderMap[r.Gender] = gid
		}
		store.GenderIDs[i] = gid
	}

	store.RecordIDs = idB.NewInt32Array()
	store.FirstNames = firstB.NewStringArray()
	store.LastNames = lastB.NewStringArray()
	store.Ages = ageB.NewInt32Array()
	return store
}

func (cs *ColumnStore) Len() int {
	return len(cs.GenderIDs)
}

// Record materializes row i. The view-rank (ID) is left at zero.
func (cs *ColumnStore) Record(i int) models.Record {
	return models.Record{
		RecordID: int(cs.RecordIDs.Value(i)),
		Name: models.Name{
			First: cs.FirstNames.Value(i),
			Last:  cs.LastNames.Value(i),
		},
		Gender: cs.GenderDict[cs.GenderIDs[i]],
		Age:    int(cs.Ages.Value(i)),
	}
}

// Records materializes every row in load order.
func (cs *ColumnStore) Records() []models.Record {
	out := make([]models.Record, cs.Len())
	for i := range out {
		out[i] = cs.Record(i)
	}
	return out
}

func (cs *ColumnStore) Release() {
	cs.RecordIDs.Release()
	cs.FirstNames.Release()
	cs.LastNames.Release()
	cs.Ages.Release()
}
