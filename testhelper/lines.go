package testhelper

// BenjaminLines contains some messages for tests.
var BenjaminLines = []string{
	"Because he never raises his eyes to the great and the meaningful, the philistine has taken experience as his gospel. It has become for him a message about life's commonness. But he has never grasped that there exists something other than experience, that there are values—inexperienceable—which we serve.",
	"Jede Äußerung menschlichen Geisteslebens kann als eine Art der Sprache aufgefaßt werden, und diese Auffassung erschließt nach Art einer wahrhaften Methode überall neue Fragestellungen.",
	"There is no muse of philosophy, nor is there one of translation.",
	"A religion may be discerned in capitalism—that is to say, capitalism serves essentially to allay the same anxieties, torments, and disturbances to which the so-called religions offered answers.",
	"Capitalism is presumably the first case of a blaming, rather than a repenting cult.\n... An enormous feeling of guilt not itself knowing how to repent, grasps at the cult,\nnot in order to repent for this guilt, but to make it universal.",
}
