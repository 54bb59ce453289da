package v1

type X int
