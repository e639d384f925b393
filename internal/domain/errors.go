package domain

import "errors"

// ErrNotFound é devolvido pelos repositórios quando o registro não existe
// ou não pertence à clínica consultada.
var ErrNotFound = errors.New("record not found")
