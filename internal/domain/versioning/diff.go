package versioning

import (
	"bytes"
	"encoding/json"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

// TrackedFields campos del producto que se versionan, en orden estable.
var TrackedFields = []string{
	"nombre",
	"equipo",
	"existencia",
	"detalle",
	"categoria",
	"costoUnitario",
	"codigoFabricante",
}

// SnapshotOf serializa los campos versionados del producto.
func SnapshotOf(p *entity.Product) entity.Snapshot {
	s := entity.Snapshot{
		"nombre":           optionalJSON(p.Nombre),
		"equipo":           optionalJSON(p.Equipo),
		"existencia":       mustJSON(p.Existencia),
		"detalle":          optionalJSON(p.Detalle),
		"categoria":        optionalJSON(p.Categoria),
		"codigoFabricante": optionalJSON(p.CodigoFabricante),
	}
	if p.CostoUnitario != nil {
		s["costoUnitario"] = mustJSON(p.CostoUnitario)
	} else {
		s["costoUnitario"] = json.RawMessage("null")
	}
	return s
}

// Diff compara dos snapshots campo a campo sobre TrackedFields.
// prev nil marca todos los campos presentes como creados. La igualdad es estricta sobre el JSON.
func Diff(prev, curr entity.Snapshot) map[string]entity.FieldChange {
	changes := make(map[string]entity.FieldChange)
	for _, f := range TrackedFields {
		now, nowOK := present(curr, f)
		if prev == nil {
			if nowOK {
				changes[f] = entity.FieldChange{Tipo: entity.ChangeCreado, Nuevo: now}
			}
			continue
		}
		before, beforeOK := present(prev, f)
		switch {
		case !beforeOK && !nowOK:
		case !beforeOK && nowOK:
			changes[f] = entity.FieldChange{Tipo: entity.ChangeAgregado, Nuevo: now}
		case beforeOK && !nowOK:
			changes[f] = entity.FieldChange{Tipo: entity.ChangeEliminado, Anterior: before}
		case !bytes.Equal(before, now):
			changes[f] = entity.FieldChange{Tipo: entity.ChangeModificado, Anterior: before, Nuevo: now}
		}
	}
	return changes
}

// present: solo un campo ausente o null cuenta como no presente; "" es un valor.
func present(s entity.Snapshot, field string) (json.RawMessage, bool) {
	v, ok := s[field]
	if !ok || len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return nil, false
	}
	return v, true
}

// optionalJSON guarda un texto vacío del producto como null en el snapshot.
func optionalJSON(v string) json.RawMessage {
	if v == "" {
		return json.RawMessage("null")
	}
	return mustJSON(v)
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return b
}
