package index

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNameIndexCaseInsensitiveLookup(t *testing.T) {
	var idx NameIndex
	idx.Add("Daft Punk", 1)
	idx.Add("daft punk", 2)
	idx.Add("Justice", 3)

	require.ElementsMatch(t, []int64{1, 2}, idx.Lookup("DAFT PUNK"))
	require.Equal(t, []int64{3}, idx.Lookup("justice"))
	require.Nil(t, idx.Lookup("Boards of Canada"))
	require.Equal(t, 2, idx.Len())
}

func TestNameIndexIgnoresEmptyNames(t *testing.T) {
	var idx NameIndex
	idx.Add("", 1)
	require.Equal(t, 0, idx.Len())
}
