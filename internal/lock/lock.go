// Package lock serializa o par "checar conflito + persistir" por barbeiro.
// A checagem de conflito é apenas consultiva; sem este ponto de serialização
// duas reservas simultâneas para o mesmo barbeiro poderiam passar juntas.
package lock

import "context"

type Locker interface {
	// Acquire bloqueia até obter a chave e devolve a função de liberação.
	Acquire(ctx context.Context, key string) (release func(), err error)
}
