package entropy

import (
	"reflect"
	"testing"
)

func TestLegalSubBlockCountsShort(t *testing.T) {
	if got := LegalSubBlockCounts(15); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("LegalSubBlockCounts(15) = %v, want [1]", got)
	}
}

func TestLegalSubBlockCountsNotDivisibleBy4(t *testing.T) {
	if got := LegalSubBlockCounts(18); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("LegalSubBlockCounts(18) = %v, want [1]", got)
	}
}

func TestLegalSubBlockCountsFull(t *testing.T) {
	got := LegalSubBlockCounts(64)
	want := []int{1, 2, 4, 8}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LegalSubBlockCounts(64) = %v, want %v", got, want)
	}
}
