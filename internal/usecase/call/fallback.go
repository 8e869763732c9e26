package call

import "strings"

type demoReply struct {
	match func(text string) bool
	reply string
}

func anyOf(keywords ...string) func(string) bool {
	return func(text string) bool {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
		return false
	}
}

// demoReplies are checked in order against the lowercased user text
var demoReplies = []demoReply{
	{anyOf("dobrý den", "ahoj", "zdravím"), "Dobrý den! Jsem AI asistent CashNDrive. Rád vám pomohu. Čím vás mohu dnes obsloužit?"},
	{anyOf("cena", "kolik"), "Naše cenové nabídky se liší podle vašich konkrétních potřeb. Rád vám připravím kalkulaci. Můžete mi říct, o jakou službu máte zájem?"},
	{anyOf("kontakt", "email"), "Můžete nás kontaktovat na emailu info@cashndrive.cz nebo zavoláte na +420 XXX XXX XXX. Kancelář je otevřená v pracovní dny od 9 do 17 hodin. Preferujete email nebo telefon?"},
	{anyOf("funguje", "jak to"), "Náš systém automaticky přijímá hovory a vede s vámi přirozenou konverzaci. Běží na Azure platformě s AI a Speech službami. Chcete vědět něco konkrétního?"},
	{anyOf("děkuji", "díky"), "Není zač, rád jsem pomohl. Potřebujete ještě něco dalšího, nebo můžeme hovor ukončit?"},
	{func(text string) bool { return strings.Contains(text, "ne") && anyOf("nic", "stačí")(text) },
		"Výborně. Shrnu náš hovor: probírali jsme vaše dotazy a doporučil jsem další kroky. Přeji vám pěkný den!"},
}

const defaultDemoReply = "Rozumím. Můžete mi prosím poskytnout více informací? Potřebuji vědět konkrétně, s čím vám mám pomoci."

// DemoReply is the deterministic answer used when the language model is unavailable
func DemoReply(userText string) string {
	text := strings.ToLower(userText)
	for _, r := range demoReplies {
		if r.match(text) {
			return r.reply
		}
	}
	return defaultDemoReply
}
