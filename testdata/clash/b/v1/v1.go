package v1

type Y string
