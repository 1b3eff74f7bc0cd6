// Package quantities implements a calculator for physical quantities.
//
// Values carry three things through every operation: whether they are exact,
// what SI dimension they have, and their first derivatives with respect to
// any number of named variables. Integers stay exact Rationals until an
// operation overflows or has an irrational result; then they become
// floating-point Quantities. Operations with no real result, like a negative
// number raised to the power 1/2, promote to Complex.
//
// The syntax of expressions is intended to be similar to math you'd write in
// your notes. "2 x y" is a multiplication of three terms. "-2^2^n" is the
// same as "-(2^(2^n))". Square brackets give units, so "9.8[m/s^2]" is an
// acceleration, and curly brackets give vectors, so "{1, 2, 3}[kg]" is three
// masses evaluated together. A name immediately followed by an open round
// bracket is a function call.
//
// An Environment holds named constants, units, and user-defined functions.
// Environments are never modified, so an expression can be evaluated with
// the same Environment concurrently.
package quantities
