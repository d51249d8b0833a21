package importer

import (
	"errors"
	"strings"
	"testing"

	"franceguessr/internal/model"

	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	p, err := ParseRecord([]string{"01001", "L ABERGEMENT CLEMENCIAT", "01400", "L ABERGEMENT CLEMENCIAT", ""})
	require.NoError(t, err)
	require.Equal(t, model.PostalCode{InseeCode: "01001", PostalCode: 1400, City: "L ABERGEMENT CLEMENCIAT"}, p)

	p, err = ParseRecord([]string{" 2A004 ", " AJACCIO ", " 20000 ", "AJACCIO", "ignored"})
	require.NoError(t, err)
	require.Equal(t, model.PostalCode{InseeCode: "2A004", PostalCode: 20000, City: "AJACCIO"}, p)

	cases := []struct {
		name   string
		fields []string
		want   error
	}{
		{"four fields", []string{"01001", "X", "01400", "X"}, ErrFieldCount},
		{"six fields", []string{"01001", "X", "01400", "X", "", ""}, ErrFieldCount},
		{"empty insee", []string{" ", "X", "01400", "X", ""}, ErrInseeCode},
		{"long insee", []string{"010011", "X", "01400", "X", ""}, ErrInseeCode},
		{"postal not int", []string{"01001", "X", "01A00", "X", ""}, ErrPostalCode},
		{"long city", []string{"01001", strings.Repeat("É", 256), "01400", "X", ""}, ErrCity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRecord(tc.fields)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParse(t *testing.T) {
	in := "\ufeffCode_commune_INSEE;Nom_commune;Code_postal;Libellé_d_acheminement;Ligne_5\r\n" +
		"01001;L ABERGEMENT CLEMENCIAT;01400;L ABERGEMENT CLEMENCIAT;\r\n" +
		"\r\n" +
		"01002;L ABERGEMENT DE VAREY;01640;L ABERGEMENT DE VAREY;\r\n" +
		"01008;AMBUTRIX;01500;AMBUTRIX;\n"

	codes, err := Parse(strings.NewReader(in), "laposte.csv")
	require.NoError(t, err)
	require.Equal(t, []model.PostalCode{
		{InseeCode: "01001", PostalCode: 1400, City: "L ABERGEMENT CLEMENCIAT"},
		{InseeCode: "01002", PostalCode: 1640, City: "L ABERGEMENT DE VAREY"},
		{InseeCode: "01008", PostalCode: 1500, City: "AMBUTRIX"},
	}, codes)
}

func TestParseWithoutHeader(t *testing.T) {
	codes, err := Parse(strings.NewReader("75056;PARIS;75001;PARIS;PARIS 01\n"), "a.csv")
	require.NoError(t, err)
	require.Equal(t, []model.PostalCode{{InseeCode: "75056", PostalCode: 75001, City: "PARIS"}}, codes)

	codes, err = Parse(strings.NewReader(""), "empty.csv")
	require.NoError(t, err)
	require.Empty(t, codes)
}

func TestParseMalformedLineIsFatal(t *testing.T) {
	in := "01001;L ABERGEMENT CLEMENCIAT;01400;L ABERGEMENT CLEMENCIAT;\n" +
		"01002;L ABERGEMENT DE VAREY;01640\n" +
		"01008;AMBUTRIX;01500;AMBUTRIX;\n"

	codes, err := Parse(strings.NewReader(in), "broken.csv")
	require.Nil(t, codes)
	require.ErrorIs(t, err, ErrFieldCount)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, "broken.csv", pe.File)
	require.Equal(t, 2, pe.Line)
	require.Contains(t, err.Error(), "broken.csv:2:")
}

func TestParseHeaderOnlyOnFirstLine(t *testing.T) {
	in := "01001;X;01400;X;\nCode_commune_INSEE;Nom_commune;Code_postal;Libellé;Ligne_5\n"
	_, err := Parse(strings.NewReader(in), "b.csv")
	require.ErrorIs(t, err, ErrInseeCode)
}

func TestParseQuotesAreNotSpecial(t *testing.T) {
	_, err := Parse(strings.NewReader("01001;\"A;B\";01400;X;\n"), "q.csv")
	require.ErrorIs(t, err, ErrFieldCount)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, 1, pe.Line)

	codes, err := Parse(strings.NewReader("01001;\"L'ABERGEMENT\";01400;X;\n"), "q.csv")
	require.NoError(t, err)
	require.Equal(t, `"L'ABERGEMENT"`, codes[0].City)
}

func TestParseHashHeader(t *testing.T) {
	in := "#Code_commune_INSEE;Nom_commune;Code_postal;Libellé_d_acheminement;Ligne_5\n" +
		"01001;L ABERGEMENT CLEMENCIAT;01400;L ABERGEMENT CLEMENCIAT;\n"
	codes, err := Parse(strings.NewReader(in), "h.csv")
	require.NoError(t, err)
	require.Len(t, codes, 1)

	_, err = Parse(strings.NewReader("\ufeff#Code_commune_INSEE;a;b;c;d\n"), "h.csv")
	require.NoError(t, err)
}

func TestParseLineNumbersCountBlankLines(t *testing.T) {
	in := "01001;X;01400;X;\n\n\n01002;X;bad;X;\n"
	_, err := Parse(strings.NewReader(in), "n.csv")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, 4, pe.Line)
}
