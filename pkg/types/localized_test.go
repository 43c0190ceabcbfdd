package types

import (
	"encoding/json"
	"testing"

	dbtypes "github.com/javohirtm/ombor-backend/pkg/db/types"
	"github.com/stretchr/testify/require"
)

func TestLocalizeResolvesRequestedLanguage(t *testing.T) {
	t.Parallel()

	value := dbtypes.Translated{"en": "kettle", "uz": "choynak"}
	out, err := json.Marshal(Localize(value, "uz"))
	require.NoError(t, err)
	require.JSONEq(t, `"choynak"`, string(out))
}

func TestLocalizeFallsBackWhenLanguageMissing(t *testing.T) {
	t.Parallel()

	value := dbtypes.Translated{"en": "kettle"}
	out, err := json.Marshal(Localize(value, "ru"))
	require.NoError(t, err)
	require.JSONEq(t, `"kettle"`, string(out))
}

func TestLocalizeKeepsRawMapWithoutLanguage(t *testing.T) {
	t.Parallel()

	value := dbtypes.Translated{"en": "kettle", "uz": "choynak"}
	out, err := json.Marshal(Localize(value, ""))
	require.NoError(t, err)
	require.JSONEq(t, `{"en":"kettle","uz":"choynak"}`, string(out))
}

func TestLocalizeNilValueMarshalsEmptyObject(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(Localize(nil, ""))
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(out))
}
