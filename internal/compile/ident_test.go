// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package compile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/equinor/dsis-schemas/internal/jschema"
)

func TestClassName(t *testing.T) {
	tests := []struct {
		name   string
		family jschema.Family
		in     string
		want   string
	}{
		{"dotted title keeps last segment", jschema.FamilyCommon, "OpenWorksCommonModel.DrillingTest", "DrillingTest"},
		{"dotted title keeps casing", jschema.FamilyCommon, "OpenWorksCommonModel.HorizonAttributeHeader2D", "HorizonAttributeHeader2D"},
		{"all-caps segment passes through", jschema.FamilyNative, "SYSADMIN.SESSIONS", "SESSIONS"},
		{"underscored segment to pascal", jschema.FamilyNative, "SYS.GEOGRAPHY_COLUMNS", "GeographyColumns"},
		{"common export prefix stripped", jschema.FamilyCommon, "OpenWorksCommonModel_RefCurrency", "RefCurrency"},
		{"native export prefix stripped", jschema.FamilyNative, "Native_EmWell", "EmWell"},
		{"native model prefix stripped", jschema.FamilyNative, "NativeModel_well_header", "WellHeader"},
		{"lowercase gets first upper", jschema.FamilyCommon, "OpenWorksCommonModel.wellplanlocation", "Wellplanlocation"},
		{"pascal segment after dot", jschema.FamilyNative, "OW5000.EmCrossSectionSurfaceAll", "EmCrossSectionSurfaceAll"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassName(tt.family, tt.in))
		})
	}
}

func TestModuleName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"DrillingTest", "drilling_test"},
		{"Seismic2DListDetail", "seismic_2d_list_detail"},
		{"HorizonAttributeHeader2D", "horizon_attribute_header2_d"},
		{"RSeismicGeometry", "r_seismic_geometry"},
		{"SESSIONS", "sessions"},
		{"GeographyColumns", "geography_columns"},
		{"EmCrossSectionSurfaceAll", "em_cross_section_surface_all"},
		{"Wellplanlocation", "wellplanlocation"},
		{"GgxKeyTblLookUp", "ggx_key_tbl_look_up"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ModuleName(tt.in))
		})
	}
}

func TestSanitize_Python(t *testing.T) {
	s := NewSanitizer(PythonProfile())

	tests := []struct {
		in        string
		wantIdent string
		wantAlias bool
	}{
		{"wellid", "wellid", false},
		{"period_type", "period_type", false},
		{"type", "type_field", true},
		{"class", "class_field", true},
		{"Optional", "Optional_field", true},
		{"id", "id_field", true},
		{"2d_model", "_2d_model", true},
		{"well-name", "well_name", true},
		{"well name", "well_name", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ident, aliased := s.Sanitize(tt.in)
			assert.Equal(t, tt.wantIdent, ident)
			assert.Equal(t, tt.wantAlias, aliased)
		})
	}
}

func TestSanitize_Go(t *testing.T) {
	s := NewSanitizer(GoProfile())

	ident, aliased := s.Sanitize("type")
	assert.Equal(t, "type_field", ident)
	assert.True(t, aliased)

	ident, aliased = s.Sanitize("wellName")
	assert.Equal(t, "wellName", ident)
	assert.False(t, aliased)

	// Python-only reserved words are fine in Go.
	ident, aliased = s.Sanitize("lambda")
	assert.Equal(t, "lambda", ident)
	assert.False(t, aliased)
}

func TestProfiles(t *testing.T) {
	assert.True(t, PythonProfile().RequiredFirst)
	assert.False(t, GoProfile().RequiredFirst)
}
