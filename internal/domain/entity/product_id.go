package entity

import (
	"strconv"
	"strings"

	"github.com/jhoicas/mashop-api/internal/domain"
)

// IDKind discrimina qué tabla es dueña de las mutaciones de un producto.
type IDKind int

const (
	// IDLocal productos creados localmente: CRUD directo sobre el set local.
	IDLocal IDKind = iota + 1
	// IDRemote productos del feed externo: mutaciones vía overrides y tombstones.
	IDRemote
)

// Prefijos de namespace en los ids serializados.
const (
	localIDPrefix  = "p-"
	remoteIDPrefix = "r-"
)

// ProductID es la unión etiquetada que identifica un producto. Se decide una sola vez
// al parsear, de modo que el enrutamiento posterior nunca vuelve a inspeccionar strings.
type ProductID struct {
	Kind IDKind
	// Value es el id serializado completo, con prefijo incluido (ej. "p-<uuid>", "r-5").
	Value string
}

// ParseProductID clasifica un id crudo en su namespace. Un id que no calza en ninguno
// de los dos namespaces devuelve ErrUnknownIDFormat; ese caso se detecta aquí, no en
// mitad de una mutación.
func ParseProductID(raw string) (ProductID, error) {
	switch {
	case strings.HasPrefix(raw, localIDPrefix):
		return ProductID{Kind: IDLocal, Value: raw}, nil
	case strings.HasPrefix(raw, remoteIDPrefix):
		return ProductID{Kind: IDRemote, Value: raw}, nil
	default:
		return ProductID{}, domain.ErrUnknownIDFormat
	}
}

// NewLocalID construye un id local a partir de un sufijo único (uuid).
func NewLocalID(suffix string) string {
	return localIDPrefix + suffix
}

// RemoteIDFor construye el id con namespace para un id numérico del feed.
func RemoteIDFor(feedID int64) string {
	return remoteIDPrefix + strconv.FormatInt(feedID, 10)
}

func (id ProductID) String() string { return id.Value }
