// Package repository define las entidades del gimnasio y los contratos de
// persistencia, independientes del almacenamiento (PostgreSQL, memoria).
//
// Convenciones:
//   - ctx siempre es el primer parámetro.
//   - Toda lectura, actualización o borrado de una entidad del tenant recibe
//     accountID como parámetro obligatorio y filtra por él. Un registro de otro
//     tenant es indistinguible de uno inexistente: ErrNotFound.
//   - Create asigna ID y timestamps cuando vienen vacíos.
//   - Update persiste todos los campos mutables de la entidad recibida; el merge
//     parcial lo resuelve la capa de servicios.
//   - Las operaciones de varios pasos se ejecutan con Store.InTx.
package repository
