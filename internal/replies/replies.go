// Package replies holds the spoken-reply templates, keyed by intent kind and
// locale. Template data is separable from the engine: the state machine never
// hardcodes reply text.
package replies

import (
	"fmt"

	"vox/internal/domain"
)

type key struct {
	kind   domain.IntentKind
	topic  string
	locale domain.Locale
}

type Catalog struct {
	templates map[key]string
}

func NewCatalog() *Catalog {
	return &Catalog{templates: defaultTemplates()}
}

// Reply renders the template for (kind, topic, locale). Topic narrows inform
// and explain variants; unknown combinations fall back to the English
// capability description so the engine always has something to say.
func (c *Catalog) Reply(kind domain.IntentKind, topic string, locale domain.Locale, args ...any) domain.SpokenReply {
	tpl, ok := c.templates[key{kind, topic, locale}]
	if !ok {
		tpl, ok = c.templates[key{kind, "", locale}]
	}
	if !ok {
		tpl, ok = c.templates[key{kind, topic, domain.LocaleEnglish}]
	}
	if !ok {
		tpl = c.templates[key{domain.IntentInform, "capabilities", domain.LocaleEnglish}]
	}
	text := tpl
	if len(args) > 0 {
		text = fmt.Sprintf(tpl, args...)
	}
	return domain.SpokenReply{Text: text, Locale: locale}
}

// TaskNarration announces progress through a multi-part command. Only spoken
// when the stack has more than one task.
func (c *Catalog) TaskNarration(i, n int, locale domain.Locale) string {
	if locale == domain.LocaleHindi {
		return fmt.Sprintf("%d में से कार्य %d।", n, i)
	}
	return fmt.Sprintf("Task %d of %d.", i, n)
}

func defaultTemplates() map[key]string {
	en := domain.LocaleEnglish
	hi := domain.LocaleHindi
	return map[key]string{
		{domain.IntentInform, "greeting", en}: "Hello! I can take you around the site, explain our plans, or connect you with our sales team. What would you like to do?",
		{domain.IntentInform, "greeting", hi}: "नमस्ते! मैं आपको साइट पर घुमा सकती हूँ, हमारे प्लान समझा सकती हूँ, या सेल्स टीम से जोड़ सकती हूँ। आप क्या करना चाहेंगे?",

		{domain.IntentInform, "thanks", en}: "You're welcome! Anything else I can help with?",
		{domain.IntentInform, "thanks", hi}: "आपका स्वागत है! और कुछ मदद चाहिए?",

		{domain.IntentInform, "capabilities", en}: "I can open pages like pricing or products, explain what's on them, book meetings, and collect your details for our sales team. Try saying take me to pricing.",
		{domain.IntentInform, "capabilities", hi}: "मैं प्राइसिंग या प्रोडक्ट जैसे पेज खोल सकती हूँ, उन्हें समझा सकती हूँ, मीटिंग बुक कर सकती हूँ और सेल्स टीम के लिए आपकी जानकारी ले सकती हूँ।",

		{domain.IntentInform, "stack-done", en}: "All done — that's everything you asked for.",
		{domain.IntentInform, "stack-done", hi}: "सब हो गया — आपने जो कहा था वह पूरा हो गया।",

		{domain.IntentClose, "", en}: "Goodbye! Just tap the microphone when you need me again.",
		{domain.IntentClose, "", hi}: "अलविदा! जब भी ज़रूरत हो माइक्रोफ़ोन दबाएं।",

		{domain.IntentNavigate, "", en}: "Taking you to %s.",
		{domain.IntentNavigate, "", hi}: "%s पर ले जा रही हूँ।",

		{domain.IntentExplain, "pricing", en}:      "Here are our plans. The starter plan is free, and paid tiers unlock team workspaces and analytics.",
		{domain.IntentExplain, "pricing", hi}:      "ये हमारे प्लान हैं। स्टार्टर प्लान मुफ़्त है, और पेड प्लान में टीम वर्कस्पेस और एनालिटिक्स मिलते हैं।",
		{domain.IntentExplain, "features", en}:     "These are the product's main features — dashboards, team management, and integrations.",
		{domain.IntentExplain, "features", hi}:     "ये प्रोडक्ट के मुख्य फीचर हैं — डैशबोर्ड, टीम मैनेजमेंट और इंटीग्रेशन।",
		{domain.IntentExplain, "products", en}:     "Here's our product line-up. Each card opens a detailed page.",
		{domain.IntentExplain, "products", hi}:     "यह हमारी प्रोडक्ट सूची है। हर कार्ड एक विस्तृत पेज खोलता है।",
		{domain.IntentExplain, "contact", en}:      "You can reach us through this form, or I can collect your details right now.",
		{domain.IntentExplain, "contact", hi}:      "आप इस फ़ॉर्म से संपर्क कर सकते हैं, या मैं अभी आपकी जानकारी ले सकती हूँ।",
		{domain.IntentExplain, "testimonials", en}: "Here's what our customers say about us.",
		{domain.IntentExplain, "testimonials", hi}: "हमारे ग्राहक हमारे बारे में यह कहते हैं।",
		{domain.IntentExplain, "", en}:             "Here's this section. Ask me about pricing, features, or products for more detail.",
		{domain.IntentExplain, "", hi}:             "यह रहा यह सेक्शन। अधिक जानकारी के लिए प्राइसिंग, फीचर या प्रोडक्ट के बारे में पूछें।",

		{domain.IntentCustomerSupport, "", en}: "I've opened the support page for %s questions. The team usually replies within a day.",
		{domain.IntentCustomerSupport, "", hi}: "%s से जुड़े सवालों के लिए सपोर्ट पेज खोल दिया है। टीम आमतौर पर एक दिन में जवाब देती है।",

		{domain.IntentDemoBooking, "", en}: "I've opened the demo form and filled in what I know. Just review and submit.",
		{domain.IntentDemoBooking, "", hi}: "डेमो फ़ॉर्म खोलकर जानकारी भर दी है। कृपया जाँच कर सबमिट करें।",

		{domain.IntentCollectData, "submitted", en}: "Thank you! Your details are with our team — they'll reach out shortly.",
		{domain.IntentCollectData, "submitted", hi}: "धन्यवाद! आपकी जानकारी हमारी टीम के पास पहुँच गई है — वे जल्द संपर्क करेंगे।",

		{domain.IntentCollectData, "retry", en}: "I couldn't send your details just now. Say yes to try again, or start over.",
		{domain.IntentCollectData, "retry", hi}: "अभी आपकी जानकारी भेज नहीं पाई। दोबारा कोशिश के लिए हाँ कहें, या फिर से शुरू करें।",

		{domain.IntentCollectData, "abandoned", en}: "Okay, I've discarded that. Let me know if you'd like to start again.",
		{domain.IntentCollectData, "abandoned", hi}: "ठीक है, मैंने वह हटा दिया। दोबारा शुरू करना हो तो बताएं।",
	}
}
